package driving

import (
	"context"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// GroundingService retrieves book passages relevant to a query.
type GroundingService interface {
	// Ground embeds the query text and returns the most similar
	// passages from the book's active index generation. An empty result
	// means "no additional context", never failure.
	Ground(ctx context.Context, bookID, query string, topK int) ([]domain.Passage, error)

	// GroundWithEmbedding is Ground for callers that already hold a
	// query embedding, such as the chat collaborator.
	GroundWithEmbedding(ctx context.Context, bookID string, queryEmbedding []float32, topK int) ([]domain.Passage, error)
}
