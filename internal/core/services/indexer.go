package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/storyloom-labs/lorebase/internal/chunker"
	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driving"
	"github.com/storyloom-labs/lorebase/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexingService = (*IndexerService)(nil)

// MinContentLength is the minimum book text length accepted for
// indexing. Anything shorter cannot produce useful grounding context.
const MinContentLength = 100

// IndexerService rebuilds a book's grounding index. Embedding calls
// within one batch fan out concurrently; batches run sequentially with
// a fixed pause between them to respect the embedding provider's rate
// limit. That pause is the only intentional concurrency control in the
// job.
type IndexerService struct {
	bookStore  driven.BookStore
	chunkStore driven.ChunkStore
	embedder   driven.EmbeddingService
	chunker    *chunker.Chunker
	batchSize  int
	limiter    *rate.Limiter
}

// NewIndexerService creates an indexer. The chunker must already be
// validated; settings fall back to defaults when zero-valued.
func NewIndexerService(
	bookStore driven.BookStore,
	chunkStore driven.ChunkStore,
	embedder driven.EmbeddingService,
	ck *chunker.Chunker,
	settings domain.IndexingSettings,
) *IndexerService {
	defaults := domain.DefaultIndexingSettings()
	if settings.BatchSize <= 0 {
		settings.BatchSize = defaults.BatchSize
	}
	if settings.BatchDelay <= 0 {
		settings.BatchDelay = defaults.BatchDelay
	}

	return &IndexerService{
		bookStore:  bookStore,
		chunkStore: chunkStore,
		embedder:   embedder,
		chunker:    ck,
		batchSize:  settings.BatchSize,
		// A limiter with burst 1 admits the first batch immediately and
		// paces every later batch by the configured delay.
		limiter: rate.NewLimiter(rate.Every(settings.BatchDelay), 1),
	}
}

// Reindex replaces the book's chunk set with a freshly embedded
// generation. Chunks are written under a new generation ID; the book's
// active generation pointer is swapped only after every batch has
// completed, so retrieval never observes a half-written index. Old
// generations are garbage-collected after the swap.
func (s *IndexerService) Reindex(ctx context.Context, ownerID, bookID, content string) (domain.IndexSummary, error) {
	var summary domain.IndexSummary

	book, err := s.bookStore.GetBook(ctx, bookID)
	if err != nil {
		return summary, fmt.Errorf("get book: %w", err)
	}
	if book.OwnerID != ownerID {
		return summary, fmt.Errorf("reindex book %s: %w", bookID, domain.ErrPermissionDenied)
	}

	normalized := chunker.Normalize(content)
	if len(normalized) < MinContentLength {
		return summary, fmt.Errorf("content must be at least %d characters: %w", MinContentLength, domain.ErrInvalidInput)
	}

	if s.embedder == nil {
		return summary, domain.ErrEmbeddingUnavailable
	}

	fragments := s.chunker.Split(normalized)
	summary.TotalChunks = len(fragments)

	generation := uuid.New().String()
	logger.Section("Reindex")
	logger.Info("Book %s: %d chunks, generation %s", bookID, len(fragments), generation)

	for start := 0; start < len(fragments); start += s.batchSize {
		if err := s.limiter.Wait(ctx); err != nil {
			return summary, fmt.Errorf("inter-batch delay: %w", err)
		}

		end := start + s.batchSize
		if end > len(fragments) {
			end = len(fragments)
		}

		batch := s.embedBatch(ctx, bookID, generation, fragments[start:end], start)
		if len(batch) > 0 {
			if err := s.chunkStore.SaveChunks(ctx, batch); err != nil {
				return summary, fmt.Errorf("%w: saving chunks: %w", domain.ErrInternal, err)
			}
		}
		summary.ChunksProcessed += len(batch)
		logger.Debug("Batch %d-%d: %d/%d chunks embedded", start, end-1, len(batch), end-start)
	}

	meta := domain.BookIndexMetadata{
		HasContent:       true,
		ChunkCount:       summary.ChunksProcessed,
		ContentLength:    len(normalized),
		ActiveGeneration: generation,
		ContentUpdatedAt: time.Now().UTC(),
	}
	if err := s.bookStore.UpdateIndexMetadata(ctx, bookID, meta); err != nil {
		return summary, fmt.Errorf("%w: updating index metadata: %w", domain.ErrInternal, err)
	}

	// Superseded generations are invisible once the pointer has swapped;
	// failing to collect them costs storage, not correctness.
	if err := s.chunkStore.PruneGenerations(ctx, bookID, generation); err != nil {
		logger.Warn("pruning old generations for book %s: %v", bookID, err)
	}

	return summary, nil
}

// embedBatch embeds one batch of fragments concurrently. A fragment
// whose embedding call fails is logged and skipped; the job never
// aborts for a single chunk.
func (s *IndexerService) embedBatch(ctx context.Context, bookID, generation string, fragments []string, offset int) []domain.Chunk {
	embeddings := make([][]float32, len(fragments))
	errs := make([]error, len(fragments))

	var wg sync.WaitGroup
	for i, fragment := range fragments {
		wg.Add(1)
		go func(i int, fragment string) {
			defer wg.Done()
			embeddings[i], errs[i] = s.embedder.Embed(ctx, fragment)
		}(i, fragment)
	}
	wg.Wait()

	now := time.Now().UTC()
	chunks := make([]domain.Chunk, 0, len(fragments))
	for i, fragment := range fragments {
		if errs[i] != nil {
			logger.Warn("chunk %d: %v: %v", offset+i, domain.ErrEmbeddingFailed, errs[i])
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			BookID:     bookID,
			Generation: generation,
			Index:      offset + i,
			Content:    fragment,
			Embedding:  embeddings[i],
			WordCount:  len(strings.Fields(fragment)),
			CreatedAt:  now,
		})
	}
	return chunks
}
