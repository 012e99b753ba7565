package driving

import (
	"context"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// IndexingService rebuilds a book's grounding index from raw text.
type IndexingService interface {
	// Reindex replaces the book's chunk set with a freshly chunked and
	// embedded generation. The caller must own the book and the content
	// must be at least MinContentLength characters.
	//
	// Embedding failures for individual chunks are skipped, not
	// retried; the returned summary counts only successes. Partial
	// success is a normal outcome.
	Reindex(ctx context.Context, ownerID, bookID, content string) (domain.IndexSummary, error)
}
