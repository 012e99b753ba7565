package domain

import "time"

// Dimension is one of the seven named axes of character behavioral
// quality scored per conversation.
type Dimension string

// The fixed dimension set. Every evaluation scores exactly these seven.
const (
	DimVoiceFidelity          Dimension = "voiceFidelity"
	DimPersonalityConsistency Dimension = "personalityConsistency"
	DimKnowledgeAccuracy      Dimension = "knowledgeAccuracy"
	DimSpoilerAvoidance       Dimension = "spoilerAvoidance"
	DimEmotionalDepth         Dimension = "emotionalDepth"
	DimEngagement             Dimension = "engagement"
	DimInstructionAdherence   Dimension = "instructionAdherence"
)

// Dimensions returns the fixed dimension set in display order.
func Dimensions() []Dimension {
	return []Dimension{
		DimVoiceFidelity,
		DimPersonalityConsistency,
		DimKnowledgeAccuracy,
		DimSpoilerAvoidance,
		DimEmotionalDepth,
		DimEngagement,
		DimInstructionAdherence,
	}
}

// DimensionCount is the size of the fixed dimension set.
const DimensionCount = 7

// MinDimensionScore and MaxDimensionScore bound a single dimension score.
const (
	MinDimensionScore = 1
	MaxDimensionScore = 5
)

// JudgeResult is one judged conversation within a report. Scores,
// concerns and verdict are optional; a judge that failed to grade a
// conversation reports only Error.
type JudgeResult struct {
	// ConvID identifies the judged conversation.
	ConvID string `json:"convId"`

	// Category is the scenario category of the conversation.
	Category string `json:"category"`

	// Scores maps dimensions to 1..5 grades. A result may score only a
	// subset of dimensions.
	Scores map[Dimension]int `json:"scores,omitempty"`

	// TotalScore is the judge-reported sum of Scores, if present.
	TotalScore int `json:"totalScore,omitempty"`

	// Concerns lists free-text issues the judge flagged.
	Concerns []string `json:"concerns,omitempty"`

	// Verdict is the judge's overall call for the conversation.
	Verdict string `json:"verdict,omitempty"`

	// Error records a grading failure for this conversation.
	Error string `json:"error,omitempty"`
}

// JudgeReport is the full output of one judge for one evaluation batch.
// Reports are produced by the external judging collaborator and are
// immutable once written.
type JudgeReport struct {
	// ID is the unique identifier for the stored report.
	ID string `json:"id,omitempty"`

	// CharacterID links to the evaluated character.
	CharacterID string `json:"characterId,omitempty"`

	// JudgeID identifies the judge persona.
	JudgeID string `json:"judgeId"`

	// JudgeName is the judge's display name.
	JudgeName string `json:"judgeName"`

	// Results holds one entry per judged conversation.
	Results []JudgeResult `json:"results"`

	// CreatedAt is when the report was stored.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Rating is the coarse display bucket for a total score.
type Rating string

// Available ratings, best to worst.
const (
	RatingExcellent  Rating = "excellent"
	RatingGood       Rating = "good"
	RatingAcceptable Rating = "acceptable"
	RatingNeedsWork  Rating = "needs_work"
	RatingNotReady   Rating = "not_ready"
)

// EvaluationResult is the classified outcome of a single evaluation run.
// Immutable once created.
type EvaluationResult struct {
	// ID is the unique identifier for the stored result.
	ID string

	// CharacterID links to the evaluated character.
	CharacterID string

	// DefinitionHash fingerprints the character definition at evaluation
	// time, so a later run can detect that the definition changed.
	DefinitionHash string

	// Scores holds one 1..5 grade per dimension, all seven present.
	Scores map[Dimension]int

	// TotalScore is the sum of Scores, in [0, 35].
	TotalScore int

	// Passed reports whether TotalScore met the pass threshold.
	Passed bool

	// Rating is the display bucket for TotalScore.
	Rating Rating

	// Suggestions are passed through verbatim from the evaluation
	// collaborator; this core structures them but never generates them.
	Suggestions []string

	// CreatedAt is when the evaluation ran.
	CreatedAt time.Time
}

// DimensionAverage is a derived per-judge per-dimension mean. It is
// recomputed on read and never persisted.
type DimensionAverage struct {
	JudgeID   string
	Dimension Dimension
	Average   float64
}

// HeatmapCell is one judge's average for one dimension.
type HeatmapCell struct {
	JudgeID   string
	JudgeName string
	Average   float64
}

// HeatmapRow aggregates one dimension across judges. HighVariance is set
// when the spread between the highest and lowest judge average exceeds
// the variance threshold.
type HeatmapRow struct {
	Dimension    Dimension
	Cells        []HeatmapCell
	HighVariance bool
}

// Severity is the display severity label for a 0..5 score. The same
// ladder is shared between single-score bars and heatmap cells.
type Severity string

// Severity labels, best to worst.
const (
	SeverityExcellent Severity = "excellent"
	SeverityGood      Severity = "good"
	SeverityFair      Severity = "fair"
	SeverityWarning   Severity = "warning"
	SeverityCritical  Severity = "critical"
)

// SeverityFor maps a 0..5 score onto the shared severity ladder.
func SeverityFor(score float64) Severity {
	switch {
	case score >= 4.5:
		return SeverityExcellent
	case score >= 4.0:
		return SeverityGood
	case score >= 3.5:
		return SeverityFair
	case score >= 3.0:
		return SeverityWarning
	default:
		return SeverityCritical
	}
}

// DriftAlert reports a meaningful change between two evaluation runs of
// the same character.
type DriftAlert struct {
	// PreviousTotal and CurrentTotal are the compared total scores.
	PreviousTotal int
	CurrentTotal  int

	// Delta is CurrentTotal - PreviousTotal.
	Delta int

	// DefinitionChanged is set when the definition hash differs between
	// the two runs, meaning the character was edited in between.
	DefinitionChanged bool
}
