package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
// Chunks are keyed by book, then generation.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string]map[string][]domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[string]map[string][]domain.Chunk),
	}
}

// SaveChunks stores chunks, appending to any already stored for the
// same book and generation.
func (s *ChunkStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bookID := chunks[0].BookID
	generation := chunks[0].Generation
	if s.chunks[bookID] == nil {
		s.chunks[bookID] = make(map[string][]domain.Chunk)
	}
	s.chunks[bookID][generation] = append(s.chunks[bookID][generation], chunks...)
	return nil
}

// GetChunks retrieves all chunks for a book's generation, ordered by
// chunk index.
func (s *ChunkStore) GetChunks(_ context.Context, bookID, generation string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	generations, ok := s.chunks[bookID]
	if !ok {
		return nil, nil
	}
	chunks := append([]domain.Chunk(nil), generations[generation]...)
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})
	return chunks, nil
}

// CountChunks returns the number of chunks in a book's generation.
func (s *ChunkStore) CountChunks(_ context.Context, bookID, generation string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	generations, ok := s.chunks[bookID]
	if !ok {
		return 0, nil
	}
	return len(generations[generation]), nil
}

// PruneGenerations removes every generation of a book except the one
// given.
func (s *ChunkStore) PruneGenerations(_ context.Context, bookID, keep string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	generations, ok := s.chunks[bookID]
	if !ok {
		return nil
	}
	for generation := range generations {
		if generation != keep {
			delete(generations, generation)
		}
	}
	return nil
}

// DeleteChunks removes all chunks for a book.
func (s *ChunkStore) DeleteChunks(_ context.Context, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, bookID)
	return nil
}

// Generations returns the generation IDs stored for a book. Test helper.
func (s *ChunkStore) Generations(bookID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var generations []string
	for generation := range s.chunks[bookID] {
		generations = append(generations, generation)
	}
	return generations
}
