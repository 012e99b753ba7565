package driven

import (
	"context"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// ReportStore persists judge reports produced by the external judging
// collaborator. Reports are immutable once written.
type ReportStore interface {
	// SaveReports stores a batch of judge reports.
	SaveReports(ctx context.Context, reports []domain.JudgeReport) error

	// ListReports returns all reports for a character, newest first.
	ListReports(ctx context.Context, characterID string) ([]domain.JudgeReport, error)

	// DeleteReports removes all reports for a character.
	DeleteReports(ctx context.Context, characterID string) error
}

// EvaluationStore persists classified evaluation results.
type EvaluationStore interface {
	// SaveEvaluation stores an evaluation result.
	SaveEvaluation(ctx context.Context, result *domain.EvaluationResult) error

	// LatestEvaluation returns the most recent result for a character,
	// or domain.ErrNotFound if the character has never been evaluated.
	LatestEvaluation(ctx context.Context, characterID string) (*domain.EvaluationResult, error)

	// ListEvaluations returns all results for a character, newest first.
	ListEvaluations(ctx context.Context, characterID string) ([]domain.EvaluationResult, error)
}
