package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driving"
	"github.com/storyloom-labs/lorebase/internal/fingerprint"
	"github.com/storyloom-labs/lorebase/internal/logger"
)

// Ensure EvaluationService implements the interface.
var _ driving.EvaluationService = (*EvaluationService)(nil)

// varianceThreshold is the judge-average spread above which a dimension
// is flagged. The comparison is strict: a spread of exactly 1.0 does
// not flag.
const varianceThreshold = 1.0

// concernPlaceholder is the form default some judges return verbatim
// instead of an actual concern. It is dropped during aggregation.
const concernPlaceholder = "List any specific concerns"

// EvaluationService aggregates judge reports and classifies evaluation
// runs. The aggregation methods are pure; only IngestReports and
// Evaluate touch storage.
type EvaluationService struct {
	characterStore driven.CharacterStore
	reportStore    driven.ReportStore
	evalStore      driven.EvaluationStore
	settings       domain.EvaluationSettings
}

// NewEvaluationService creates an evaluation service.
func NewEvaluationService(
	characterStore driven.CharacterStore,
	reportStore driven.ReportStore,
	evalStore driven.EvaluationStore,
	settings domain.EvaluationSettings,
) *EvaluationService {
	defaults := domain.DefaultEvaluationSettings()
	if settings.PassThreshold <= 0 {
		settings.PassThreshold = defaults.PassThreshold
	}
	if settings.ExcellentMin <= 0 {
		settings.ExcellentMin = defaults.ExcellentMin
	}
	if settings.GoodMin <= 0 {
		settings.GoodMin = defaults.GoodMin
	}
	if settings.AcceptableMin <= 0 {
		settings.AcceptableMin = defaults.AcceptableMin
	}
	if settings.NeedsWorkMin <= 0 {
		settings.NeedsWorkMin = defaults.NeedsWorkMin
	}
	if settings.DriftThreshold <= 0 {
		settings.DriftThreshold = defaults.DriftThreshold
	}

	return &EvaluationService{
		characterStore: characterStore,
		reportStore:    reportStore,
		evalStore:      evalStore,
		settings:       settings,
	}
}

// IngestReports stores a batch of judge reports for a character.
func (s *EvaluationService) IngestReports(ctx context.Context, characterID string, reports []domain.JudgeReport) error {
	if len(reports) == 0 {
		return fmt.Errorf("no reports given: %w", domain.ErrInvalidInput)
	}

	if _, err := s.characterStore.GetCharacter(ctx, characterID); err != nil {
		return fmt.Errorf("get character: %w", err)
	}

	now := time.Now().UTC()
	for i := range reports {
		if reports[i].ID == "" {
			reports[i].ID = uuid.New().String()
		}
		reports[i].CharacterID = characterID
		reports[i].CreatedAt = now
	}

	if err := s.reportStore.SaveReports(ctx, reports); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}
	logger.Info("Stored %d judge reports for character %s", len(reports), characterID)
	return nil
}

// Reports returns the stored reports for a character, newest first.
func (s *EvaluationService) Reports(ctx context.Context, characterID string) ([]domain.JudgeReport, error) {
	reports, err := s.reportStore.ListReports(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Averages computes per-dimension means for one report. A result that
// does not score a dimension is ignored for that dimension rather than
// dragging the mean down; a dimension no result scores averages 0.
// Means are rounded to one decimal place.
func (s *EvaluationService) Averages(report domain.JudgeReport) map[domain.Dimension]float64 {
	averages := make(map[domain.Dimension]float64, domain.DimensionCount)

	for _, dim := range domain.Dimensions() {
		sum, count := 0, 0
		for _, result := range report.Results {
			score, ok := result.Scores[dim]
			if !ok {
				continue
			}
			sum += score
			count++
		}

		if count == 0 {
			averages[dim] = 0
			continue
		}
		averages[dim] = math.Round(float64(sum)/float64(count)*10) / 10
	}

	return averages
}

// Heatmap computes per-dimension per-judge averages across reports. A
// dimension is flagged high-variance when the spread between the
// highest and lowest judge average strictly exceeds the variance
// threshold; judges that scored no conversation on a dimension are
// shown as 0 but excluded from the spread.
func (s *EvaluationService) Heatmap(reports []domain.JudgeReport) []domain.HeatmapRow {
	perJudge := make([]map[domain.Dimension]float64, len(reports))
	scored := make([]map[domain.Dimension]bool, len(reports))
	for i, report := range reports {
		perJudge[i] = s.Averages(report)
		scored[i] = make(map[domain.Dimension]bool, domain.DimensionCount)
		for _, result := range report.Results {
			for dim := range result.Scores {
				scored[i][dim] = true
			}
		}
	}

	rows := make([]domain.HeatmapRow, 0, domain.DimensionCount)
	for _, dim := range domain.Dimensions() {
		row := domain.HeatmapRow{Dimension: dim}

		lo, hi := math.Inf(1), math.Inf(-1)
		for i, report := range reports {
			average := perJudge[i][dim]
			row.Cells = append(row.Cells, domain.HeatmapCell{
				JudgeID:   report.JudgeID,
				JudgeName: report.JudgeName,
				Average:   average,
			})
			if !scored[i][dim] {
				continue
			}
			lo = math.Min(lo, average)
			hi = math.Max(hi, average)
		}

		row.HighVariance = hi > lo && hi-lo > varianceThreshold
		rows = append(rows, row)
	}

	return rows
}

// Concerns collects every concern from all reports except the excluded
// judge, deduplicated with set semantics. Blank entries and the known
// form placeholder are dropped. Result order is unspecified.
func (s *EvaluationService) Concerns(reports []domain.JudgeReport, excludeJudgeID string) []string {
	seen := make(map[string]struct{})
	for _, report := range reports {
		if report.JudgeID == excludeJudgeID {
			continue
		}
		for _, result := range report.Results {
			for _, concern := range result.Concerns {
				concern = strings.TrimSpace(concern)
				if concern == "" || concern == concernPlaceholder {
					continue
				}
				seen[concern] = struct{}{}
			}
		}
	}

	concerns := make([]string, 0, len(seen))
	for concern := range seen {
		concerns = append(concerns, concern)
	}
	return concerns
}

// Classify turns a complete 7-dimension score map into an evaluation
// result. The score map must contain exactly the fixed dimension set
// with every grade in [1, 5].
func (s *EvaluationService) Classify(scores map[domain.Dimension]int, suggestions []string) (domain.EvaluationResult, error) {
	var result domain.EvaluationResult

	if len(scores) != domain.DimensionCount {
		return result, fmt.Errorf("expected %d dimension scores, got %d: %w", domain.DimensionCount, len(scores), domain.ErrInvalidInput)
	}

	total := 0
	for _, dim := range domain.Dimensions() {
		score, ok := scores[dim]
		if !ok {
			return result, fmt.Errorf("missing score for dimension %q: %w", dim, domain.ErrInvalidInput)
		}
		if score < domain.MinDimensionScore || score > domain.MaxDimensionScore {
			return result, fmt.Errorf("score %d for dimension %q out of range: %w", score, dim, domain.ErrInvalidInput)
		}
		total += score
	}

	if suggestions == nil {
		suggestions = []string{}
	}

	copied := make(map[domain.Dimension]int, len(scores))
	for dim, score := range scores {
		copied[dim] = score
	}

	return domain.EvaluationResult{
		Scores:      copied,
		TotalScore:  total,
		Passed:      total >= s.settings.PassThreshold,
		Rating:      s.rating(total),
		Suggestions: suggestions,
	}, nil
}

// Evaluate classifies the scores, fingerprints the character's current
// definition, persists the result and compares it against the previous
// run. A drift alert fires when the total moved by at least the
// configured threshold or the definition changed between runs; it is
// nil on a first evaluation.
func (s *EvaluationService) Evaluate(ctx context.Context, characterID string, scores map[domain.Dimension]int, suggestions []string) (domain.EvaluationResult, *domain.DriftAlert, error) {
	character, err := s.characterStore.GetCharacter(ctx, characterID)
	if err != nil {
		return domain.EvaluationResult{}, nil, fmt.Errorf("get character: %w", err)
	}

	result, err := s.Classify(scores, suggestions)
	if err != nil {
		return domain.EvaluationResult{}, nil, err
	}

	result.ID = uuid.New().String()
	result.CharacterID = characterID
	result.DefinitionHash = fingerprint.HashDefinition(*character)
	result.CreatedAt = time.Now().UTC()

	previous, err := s.evalStore.LatestEvaluation(ctx, characterID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.EvaluationResult{}, nil, fmt.Errorf("get previous evaluation: %w", err)
	}

	if err := s.evalStore.SaveEvaluation(ctx, &result); err != nil {
		return domain.EvaluationResult{}, nil, fmt.Errorf("save evaluation: %w", err)
	}

	var alert *domain.DriftAlert
	if previous != nil {
		delta := result.TotalScore - previous.TotalScore
		changed := previous.DefinitionHash != result.DefinitionHash
		if abs(delta) >= s.settings.DriftThreshold || changed {
			alert = &domain.DriftAlert{
				PreviousTotal:     previous.TotalScore,
				CurrentTotal:      result.TotalScore,
				Delta:             delta,
				DefinitionChanged: changed,
			}
			logger.Info("Drift alert for character %s: delta %+d, definition changed: %v", characterID, delta, changed)
		}
	}

	return result, alert, nil
}

// rating maps a total score onto the configured display buckets.
func (s *EvaluationService) rating(total int) domain.Rating {
	switch {
	case total >= s.settings.ExcellentMin:
		return domain.RatingExcellent
	case total >= s.settings.GoodMin:
		return domain.RatingGood
	case total >= s.settings.AcceptableMin:
		return domain.RatingAcceptable
	case total >= s.settings.NeedsWorkMin:
		return domain.RatingNeedsWork
	default:
		return domain.RatingNotReady
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
