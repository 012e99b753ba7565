package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyloom-labs/lorebase/internal/adapters/driven/storage/memory"
	"github.com/storyloom-labs/lorebase/internal/chunker"
	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/services"
)

// flatEmbedder maps every text to the same unit vector.
type flatEmbedder struct{}

func (flatEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (flatEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i], _ = flatEmbedder{}.Embed(ctx, texts[i])
	}
	return out, nil
}

func (flatEmbedder) Dimensions() int              { return 3 }
func (flatEmbedder) ModelName() string            { return "flat" }
func (flatEmbedder) Ping(_ context.Context) error { return nil }
func (flatEmbedder) Close() error                 { return nil }

func newTestPorts(t *testing.T) *Ports {
	t.Helper()

	books := memory.NewBookStore()
	chunks := memory.NewChunkStore()
	characters := memory.NewCharacterStore()

	ck, err := chunker.New()
	require.NoError(t, err)

	return &Ports{
		Grounding: services.NewGroundingService(books, chunks, flatEmbedder{}, domain.SearchSettings{}),
		Library:   services.NewLibrary(books, chunks, characters),
		Indexing:  services.NewIndexerService(books, chunks, flatEmbedder{}, ck, domain.IndexingSettings{BatchDelay: 1}),
		Owner:     "local",
	}
}

func TestPorts_Validate(t *testing.T) {
	t.Run("grounding is required", func(t *testing.T) {
		err := (&Ports{}).Validate()
		assert.ErrorIs(t, err, ErrMissingGroundingService)
	})

	t.Run("library and indexing are optional", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Library = nil
		ports.Indexing = nil
		assert.NoError(t, ports.Validate())
	})
}

func TestNewServer(t *testing.T) {
	t.Run("creates server with full ports", func(t *testing.T) {
		server, err := NewServer(newTestPorts(t))
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("defaults the owner", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Owner = ""
		_, err := NewServer(ports)
		require.NoError(t, err)
		assert.Equal(t, "local", ports.Owner)
	})

	t.Run("rejects missing grounding service", func(t *testing.T) {
		_, err := NewServer(&Ports{})
		assert.ErrorIs(t, err, ErrMissingGroundingService)
	})
}
