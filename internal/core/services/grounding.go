package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driving"
	"github.com/storyloom-labs/lorebase/internal/logger"
)

// Ensure GroundingService implements the interface.
var _ driving.GroundingService = (*GroundingService)(nil)

// GroundingService retrieves the book passages most similar to a query
// embedding. Retrieval is a linear cosine scan over the book's active
// generation; at single-book scale an index structure buys nothing.
type GroundingService struct {
	bookStore  driven.BookStore
	chunkStore driven.ChunkStore
	embedder   driven.EmbeddingService
	settings   domain.SearchSettings
}

// NewGroundingService creates a grounding service. The embedder is
// optional; without it only GroundWithEmbedding works.
func NewGroundingService(
	bookStore driven.BookStore,
	chunkStore driven.ChunkStore,
	embedder driven.EmbeddingService,
	settings domain.SearchSettings,
) *GroundingService {
	defaults := domain.DefaultSearchSettings()
	if settings.TopK <= 0 {
		settings.TopK = defaults.TopK
	}
	if settings.SimilarityThreshold == 0 {
		settings.SimilarityThreshold = defaults.SimilarityThreshold
	}

	return &GroundingService{
		bookStore:  bookStore,
		chunkStore: chunkStore,
		embedder:   embedder,
		settings:   settings,
	}
}

// Ground embeds the query text and searches the book's active
// generation.
func (s *GroundingService) Ground(ctx context.Context, bookID, query string, topK int) ([]domain.Passage, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	queryEmbedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.GroundWithEmbedding(ctx, bookID, queryEmbedding, topK)
}

// GroundWithEmbedding scans the book's chunks, keeps those above the
// relevance floor and returns the topK most similar. An empty result is
// "no additional context", never an error.
func (s *GroundingService) GroundWithEmbedding(ctx context.Context, bookID string, queryEmbedding []float32, topK int) ([]domain.Passage, error) {
	if topK <= 0 {
		topK = s.settings.TopK
	}

	book, err := s.bookStore.GetBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book.ActiveGeneration == "" {
		logger.Debug("Book %s has no active index generation", bookID)
		return []domain.Passage{}, nil
	}

	chunks, err := s.chunkStore.GetChunks(ctx, bookID, book.ActiveGeneration)
	if err != nil {
		return nil, fmt.Errorf("get chunks: %w", err)
	}

	passages := make([]domain.Passage, 0, len(chunks))
	for _, chunk := range chunks {
		similarity, err := CosineSimilarity(queryEmbedding, chunk.Embedding)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk.Index, err)
		}
		if similarity > s.settings.SimilarityThreshold {
			passages = append(passages, domain.Passage{
				Content:    chunk.Content,
				Similarity: similarity,
			})
		}
	}

	sort.Slice(passages, func(i, j int) bool {
		return passages[i].Similarity > passages[j].Similarity
	})

	if len(passages) > topK {
		passages = passages[:topK]
	}

	logger.Debug("Grounding search over %d chunks: %d passages above %.2f", len(chunks), len(passages), s.settings.SimilarityThreshold)
	return passages, nil
}

// CosineSimilarity returns the normalised dot product of two vectors,
// in [-1, 1]. Vectors of different lengths are a dimension mismatch. A
// zero-norm vector yields 0 by convention rather than a division error;
// a degenerate embedding is simply unrelated to everything.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
