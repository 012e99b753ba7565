package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyloom-labs/lorebase/internal/adapters/driven/storage/memory"
	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

func newEvaluationFixture() (*EvaluationService, *memory.CharacterStore, *memory.ReportStore, *memory.EvaluationStore) {
	characters := memory.NewCharacterStore()
	reports := memory.NewReportStore()
	evaluations := memory.NewEvaluationStore()
	svc := NewEvaluationService(characters, reports, evaluations, domain.DefaultEvaluationSettings())
	return svc, characters, reports, evaluations
}

func seedCharacter(t *testing.T, store *memory.CharacterStore, id, owner string) {
	t.Helper()
	def := domain.NewCharacterDefinition(id, owner, domain.CharacterInput{
		Name:        "Elizabeth Bennet",
		Role:        "protagonist",
		Personality: "witty",
		Voice:       "dry irony",
	}, time.Now().UTC())
	require.NoError(t, store.SaveCharacter(context.Background(), &def))
}

func fullScores(base int) map[domain.Dimension]int {
	scores := make(map[domain.Dimension]int, domain.DimensionCount)
	for _, dim := range domain.Dimensions() {
		scores[dim] = base
	}
	return scores
}

func TestEvaluation_Averages(t *testing.T) {
	svc, _, _, _ := newEvaluationFixture()

	t.Run("ignores results missing a dimension", func(t *testing.T) {
		report := domain.JudgeReport{
			JudgeID: "judge-1",
			Results: []domain.JudgeResult{
				{ConvID: "c1", Scores: map[domain.Dimension]int{domain.DimVoiceFidelity: 4}},
				{ConvID: "c2", Scores: map[domain.Dimension]int{domain.DimVoiceFidelity: 5}},
				{ConvID: "c3", Scores: map[domain.Dimension]int{domain.DimEngagement: 3}},
			},
		}

		averages := svc.Averages(report)
		// Two conversations scored voiceFidelity 4 and 5; the third is
		// ignored for that dimension, so the mean is 4.5, not 3.0.
		assert.InDelta(t, 4.5, averages[domain.DimVoiceFidelity], 1e-9)
		assert.InDelta(t, 3.0, averages[domain.DimEngagement], 1e-9)
	})

	t.Run("unscored dimension averages zero", func(t *testing.T) {
		report := domain.JudgeReport{
			JudgeID: "judge-1",
			Results: []domain.JudgeResult{
				{ConvID: "c1", Scores: map[domain.Dimension]int{domain.DimVoiceFidelity: 4}},
			},
		}

		averages := svc.Averages(report)
		assert.Zero(t, averages[domain.DimSpoilerAvoidance])
		assert.Len(t, averages, domain.DimensionCount)
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		report := domain.JudgeReport{
			JudgeID: "judge-1",
			Results: []domain.JudgeResult{
				{ConvID: "c1", Scores: map[domain.Dimension]int{domain.DimEngagement: 4}},
				{ConvID: "c2", Scores: map[domain.Dimension]int{domain.DimEngagement: 4}},
				{ConvID: "c3", Scores: map[domain.Dimension]int{domain.DimEngagement: 5}},
			},
		}

		averages := svc.Averages(report)
		assert.InDelta(t, 4.3, averages[domain.DimEngagement], 1e-9)
	})

	t.Run("errored results carry no scores", func(t *testing.T) {
		report := domain.JudgeReport{
			JudgeID: "judge-1",
			Results: []domain.JudgeResult{
				{ConvID: "c1", Scores: map[domain.Dimension]int{domain.DimVoiceFidelity: 2}},
				{ConvID: "c2", Error: "grading timed out"},
			},
		}

		averages := svc.Averages(report)
		assert.InDelta(t, 2.0, averages[domain.DimVoiceFidelity], 1e-9)
	})
}

func reportScoring(judgeID string, dim domain.Dimension, scores ...int) domain.JudgeReport {
	report := domain.JudgeReport{JudgeID: judgeID, JudgeName: judgeID}
	for i, score := range scores {
		report.Results = append(report.Results, domain.JudgeResult{
			ConvID: judgeID + "-conv-" + string(rune('a'+i)),
			Scores: map[domain.Dimension]int{dim: score},
		})
	}
	return report
}

func TestEvaluation_Heatmap(t *testing.T) {
	svc, _, _, _ := newEvaluationFixture()

	t.Run("flags spread above one", func(t *testing.T) {
		rows := svc.Heatmap([]domain.JudgeReport{
			reportScoring("judge-1", domain.DimVoiceFidelity, 5),
			reportScoring("judge-2", domain.DimVoiceFidelity, 3),
		})

		require.Len(t, rows, domain.DimensionCount)
		for _, row := range rows {
			if row.Dimension == domain.DimVoiceFidelity {
				assert.True(t, row.HighVariance)
				require.Len(t, row.Cells, 2)
			} else {
				assert.False(t, row.HighVariance)
			}
		}
	})

	t.Run("spread of exactly one does not flag", func(t *testing.T) {
		rows := svc.Heatmap([]domain.JudgeReport{
			reportScoring("judge-1", domain.DimEngagement, 4),
			reportScoring("judge-2", domain.DimEngagement, 5),
		})

		for _, row := range rows {
			assert.False(t, row.HighVariance, "dimension %s", row.Dimension)
		}
	})

	t.Run("judges without scores are excluded from spread", func(t *testing.T) {
		rows := svc.Heatmap([]domain.JudgeReport{
			reportScoring("judge-1", domain.DimEngagement, 4),
			{JudgeID: "judge-2", JudgeName: "judge-2"}, // no results at all
		})

		for _, row := range rows {
			assert.False(t, row.HighVariance, "dimension %s", row.Dimension)
		}
	})

	t.Run("single judge never flags", func(t *testing.T) {
		rows := svc.Heatmap([]domain.JudgeReport{
			reportScoring("judge-1", domain.DimEngagement, 1),
		})
		for _, row := range rows {
			assert.False(t, row.HighVariance)
		}
	})
}

func TestEvaluation_Concerns(t *testing.T) {
	svc, _, _, _ := newEvaluationFixture()

	reports := []domain.JudgeReport{
		{
			JudgeID: "primary",
			Results: []domain.JudgeResult{
				{ConvID: "c1", Concerns: []string{"automated judge concern"}},
			},
		},
		{
			JudgeID: "judge-1",
			Results: []domain.JudgeResult{
				{ConvID: "c2", Concerns: []string{"spoiler risk", ""}},
				{ConvID: "c3", Concerns: []string{"List any specific concerns"}},
			},
		},
		{
			JudgeID: "judge-2",
			Results: []domain.JudgeResult{
				{ConvID: "c4", Concerns: []string{"spoiler risk"}},
			},
		},
	}

	concerns := svc.Concerns(reports, "primary")
	assert.ElementsMatch(t, []string{"spoiler risk"}, concerns)
}

func TestEvaluation_Classify(t *testing.T) {
	svc, _, _, _ := newEvaluationFixture()

	t.Run("passing scores", func(t *testing.T) {
		scores := map[domain.Dimension]int{
			domain.DimVoiceFidelity:          5,
			domain.DimPersonalityConsistency: 5,
			domain.DimKnowledgeAccuracy:      5,
			domain.DimSpoilerAvoidance:       5,
			domain.DimEmotionalDepth:         4,
			domain.DimEngagement:             4,
			domain.DimInstructionAdherence:   4,
		}

		result, err := svc.Classify(scores, []string{"tighten the voice"})
		require.NoError(t, err)
		assert.Equal(t, 32, result.TotalScore)
		assert.True(t, result.Passed)
		assert.Equal(t, domain.RatingExcellent, result.Rating)
		assert.Equal(t, []string{"tighten the voice"}, result.Suggestions)
	})

	t.Run("failing scores", func(t *testing.T) {
		result, err := svc.Classify(fullScores(3), nil)
		require.NoError(t, err)
		assert.Equal(t, 21, result.TotalScore)
		assert.False(t, result.Passed)
		assert.Equal(t, domain.RatingNeedsWork, result.Rating)
		assert.NotNil(t, result.Suggestions)
	})

	t.Run("rating buckets", func(t *testing.T) {
		cases := map[int]domain.Rating{
			5: domain.RatingExcellent,  // 35
			4: domain.RatingGood,       // 28
			2: domain.RatingNotReady,   // 14
			1: domain.RatingNotReady,   // 7
		}
		for base, want := range cases {
			result, err := svc.Classify(fullScores(base), nil)
			require.NoError(t, err)
			assert.Equal(t, want, result.Rating, "base score %d", base)
		}
	})

	t.Run("missing dimension", func(t *testing.T) {
		scores := fullScores(4)
		delete(scores, domain.DimEngagement)
		_, err := svc.Classify(scores, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown dimension", func(t *testing.T) {
		scores := fullScores(4)
		delete(scores, domain.DimEngagement)
		scores["sparkle"] = 4
		_, err := svc.Classify(scores, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("out of range score", func(t *testing.T) {
		scores := fullScores(4)
		scores[domain.DimEngagement] = 6
		_, err := svc.Classify(scores, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		scores[domain.DimEngagement] = 0
		_, err = svc.Classify(scores, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestEvaluation_Evaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("first run stores result without drift", func(t *testing.T) {
		svc, characters, _, evaluations := newEvaluationFixture()
		seedCharacter(t, characters, "char-1", "owner-1")

		result, alert, err := svc.Evaluate(ctx, "char-1", fullScores(4), nil)
		require.NoError(t, err)
		assert.Nil(t, alert)
		assert.Equal(t, 28, result.TotalScore)
		assert.Len(t, result.DefinitionHash, 12)

		stored, err := evaluations.LatestEvaluation(ctx, "char-1")
		require.NoError(t, err)
		assert.Equal(t, result.ID, stored.ID)
	})

	t.Run("drift alert on large delta", func(t *testing.T) {
		svc, characters, _, _ := newEvaluationFixture()
		seedCharacter(t, characters, "char-1", "owner-1")

		_, _, err := svc.Evaluate(ctx, "char-1", fullScores(4), nil)
		require.NoError(t, err)

		_, alert, err := svc.Evaluate(ctx, "char-1", fullScores(3), nil)
		require.NoError(t, err)
		require.NotNil(t, alert)
		assert.Equal(t, 28, alert.PreviousTotal)
		assert.Equal(t, 21, alert.CurrentTotal)
		assert.Equal(t, -7, alert.Delta)
		assert.False(t, alert.DefinitionChanged)
	})

	t.Run("no alert under threshold", func(t *testing.T) {
		svc, characters, _, _ := newEvaluationFixture()
		seedCharacter(t, characters, "char-1", "owner-1")

		_, _, err := svc.Evaluate(ctx, "char-1", fullScores(4), nil)
		require.NoError(t, err)

		scores := fullScores(4)
		scores[domain.DimEngagement] = 5 // delta +1, threshold is 3
		_, alert, err := svc.Evaluate(ctx, "char-1", scores, nil)
		require.NoError(t, err)
		assert.Nil(t, alert)
	})

	t.Run("definition change raises alert", func(t *testing.T) {
		svc, characters, _, _ := newEvaluationFixture()
		seedCharacter(t, characters, "char-1", "owner-1")

		_, _, err := svc.Evaluate(ctx, "char-1", fullScores(4), nil)
		require.NoError(t, err)

		def, err := characters.GetCharacter(ctx, "char-1")
		require.NoError(t, err)
		def.Personality = "suddenly brooding"
		require.NoError(t, characters.SaveCharacter(ctx, def))

		_, alert, err := svc.Evaluate(ctx, "char-1", fullScores(4), nil)
		require.NoError(t, err)
		require.NotNil(t, alert)
		assert.True(t, alert.DefinitionChanged)
		assert.Zero(t, alert.Delta)
	})

	t.Run("unknown character", func(t *testing.T) {
		svc, _, _, _ := newEvaluationFixture()
		_, _, err := svc.Evaluate(ctx, "missing", fullScores(4), nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEvaluation_IngestReports(t *testing.T) {
	ctx := context.Background()

	t.Run("stores reports with identity", func(t *testing.T) {
		svc, characters, reports, _ := newEvaluationFixture()
		seedCharacter(t, characters, "char-1", "owner-1")

		batch := []domain.JudgeReport{
			reportScoring("judge-1", domain.DimVoiceFidelity, 4, 5),
			reportScoring("judge-2", domain.DimVoiceFidelity, 3),
		}
		require.NoError(t, svc.IngestReports(ctx, "char-1", batch))

		stored, err := reports.ListReports(ctx, "char-1")
		require.NoError(t, err)
		require.Len(t, stored, 2)
		for _, report := range stored {
			assert.NotEmpty(t, report.ID)
			assert.Equal(t, "char-1", report.CharacterID)
			assert.False(t, report.CreatedAt.IsZero())
		}
	})

	t.Run("unknown character", func(t *testing.T) {
		svc, _, _, _ := newEvaluationFixture()
		err := svc.IngestReports(ctx, "missing", []domain.JudgeReport{reportScoring("judge-1", domain.DimEngagement, 4)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty batch", func(t *testing.T) {
		svc, characters, _, _ := newEvaluationFixture()
		seedCharacter(t, characters, "char-1", "owner-1")
		err := svc.IngestReports(ctx, "char-1", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
