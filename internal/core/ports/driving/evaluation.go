package driving

import (
	"context"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// EvaluationService aggregates judge reports and classifies evaluation
// runs.
type EvaluationService interface {
	// IngestReports stores a batch of judge reports for a character.
	IngestReports(ctx context.Context, characterID string, reports []domain.JudgeReport) error

	// Reports returns the stored reports for a character, newest first.
	Reports(ctx context.Context, characterID string) ([]domain.JudgeReport, error)

	// Averages computes per-dimension means for one report over the
	// fixed dimension set. Results missing a dimension are ignored for
	// that dimension; a dimension scored by no result averages 0.
	Averages(report domain.JudgeReport) map[domain.Dimension]float64

	// Heatmap computes per-dimension per-judge averages across reports
	// and flags dimensions whose judge averages spread by more than the
	// variance threshold.
	Heatmap(reports []domain.JudgeReport) []domain.HeatmapRow

	// Concerns collects deduplicated concern strings from every report
	// except the excluded judge, dropping blanks and the known form
	// placeholder. Result order is unspecified.
	Concerns(reports []domain.JudgeReport, excludeJudgeID string) []string

	// Classify turns a complete 7-dimension score map into an
	// evaluation result. Suggestions pass through verbatim.
	Classify(scores map[domain.Dimension]int, suggestions []string) (domain.EvaluationResult, error)

	// Evaluate classifies the scores, fingerprints the character's
	// current definition, persists the result and compares it against
	// the previous run for drift. The drift alert is nil on a first
	// evaluation or when the delta stays under the configured
	// threshold.
	Evaluate(ctx context.Context, characterID string, scores map[domain.Dimension]int, suggestions []string) (domain.EvaluationResult, *domain.DriftAlert, error)
}
