package driven

import (
	"context"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// ChunkStore persists embedded chunks. Chunks are written under a
// generation and become visible to retrieval only once the owning
// book's active generation points at them.
type ChunkStore interface {
	// SaveChunks stores chunks. All chunks in one call belong to the
	// same book and generation.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunks retrieves all chunks for a book's generation, ordered
	// by chunk index.
	GetChunks(ctx context.Context, bookID, generation string) ([]domain.Chunk, error)

	// CountChunks returns the number of chunks in a book's generation.
	CountChunks(ctx context.Context, bookID, generation string) (int, error)

	// PruneGenerations removes every generation of a book except the
	// one given. Used to garbage-collect superseded generations after
	// the active pointer has been swapped.
	PruneGenerations(ctx context.Context, bookID, keep string) error

	// DeleteChunks removes all chunks for a book, every generation.
	DeleteChunks(ctx context.Context, bookID string) error
}
