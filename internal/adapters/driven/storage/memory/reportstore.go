package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
)

// Ensure the stores implement their interfaces.
var (
	_ driven.ReportStore     = (*ReportStore)(nil)
	_ driven.EvaluationStore = (*EvaluationStore)(nil)
)

// ReportStore is an in-memory implementation of driven.ReportStore.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string][]domain.JudgeReport
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string][]domain.JudgeReport),
	}
}

// SaveReports stores a batch of judge reports.
func (s *ReportStore) SaveReports(_ context.Context, reports []domain.JudgeReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, report := range reports {
		s.reports[report.CharacterID] = append(s.reports[report.CharacterID], report)
	}
	return nil
}

// ListReports returns all reports for a character, newest first.
func (s *ReportStore) ListReports(_ context.Context, characterID string) ([]domain.JudgeReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := append([]domain.JudgeReport(nil), s.reports[characterID]...)
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

// DeleteReports removes all reports for a character.
func (s *ReportStore) DeleteReports(_ context.Context, characterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reports, characterID)
	return nil
}

// EvaluationStore is an in-memory implementation of
// driven.EvaluationStore.
type EvaluationStore struct {
	mu      sync.RWMutex
	results map[string][]domain.EvaluationResult
}

// NewEvaluationStore creates a new in-memory evaluation store.
func NewEvaluationStore() *EvaluationStore {
	return &EvaluationStore{
		results: make(map[string][]domain.EvaluationResult),
	}
}

// SaveEvaluation stores an evaluation result.
func (s *EvaluationStore) SaveEvaluation(_ context.Context, result *domain.EvaluationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.CharacterID] = append(s.results[result.CharacterID], *result)
	return nil
}

// LatestEvaluation returns the most recent result for a character.
func (s *EvaluationStore) LatestEvaluation(_ context.Context, characterID string) (*domain.EvaluationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := s.results[characterID]
	if len(results) == 0 {
		return nil, domain.ErrNotFound
	}
	// Ties on CreatedAt resolve to the most recently stored result.
	latest := results[0]
	for _, result := range results[1:] {
		if !result.CreatedAt.Before(latest.CreatedAt) {
			latest = result
		}
	}
	return &latest, nil
}

// ListEvaluations returns all results for a character, newest first.
func (s *EvaluationStore) ListEvaluations(_ context.Context, characterID string) ([]domain.EvaluationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := append([]domain.EvaluationResult(nil), s.results[characterID]...)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}
