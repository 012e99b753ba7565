package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBookWithIndex(t *testing.T, server *Server) string {
	t.Helper()
	ctx := context.Background()

	book, err := server.ports.Library.AddBook(ctx, "local", "Emma", "Jane Austen")
	require.NoError(t, err)

	content := strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)
	_, _, err = server.handleReindex(ctx, nil, ReindexInput{BookID: book.ID, Content: content})
	require.NoError(t, err)

	return book.ID
}

func TestHandleGround(t *testing.T) {
	server, err := NewServer(newTestPorts(t))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("returns passages from the indexed book", func(t *testing.T) {
		bookID := seedBookWithIndex(t, server)

		_, output, err := server.handleGround(ctx, nil, GroundInput{
			BookID: bookID,
			Query:  "what does the fox do",
		})
		require.NoError(t, err)
		require.NotEmpty(t, output.Passages)
		assert.Equal(t, len(output.Passages), output.Count)
		assert.InDelta(t, 1.0, output.Passages[0].Similarity, 0.001)
	})

	t.Run("unknown book surfaces an error", func(t *testing.T) {
		_, _, err := server.handleGround(ctx, nil, GroundInput{BookID: "missing", Query: "x"})
		assert.Error(t, err)
	})
}

func TestHandleReindex(t *testing.T) {
	server, err := NewServer(newTestPorts(t))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("indexes and reports the summary", func(t *testing.T) {
		book, err := server.ports.Library.AddBook(ctx, "local", "Emma", "")
		require.NoError(t, err)

		content := strings.Repeat("word ", 200)
		_, output, err := server.handleReindex(ctx, nil, ReindexInput{BookID: book.ID, Content: content})
		require.NoError(t, err)
		assert.Positive(t, output.ChunksProcessed)
		assert.Equal(t, output.TotalChunks, output.ChunksProcessed)
	})

	t.Run("rejects undersized content", func(t *testing.T) {
		book, err := server.ports.Library.AddBook(ctx, "local", "Shorts", "")
		require.NoError(t, err)

		_, _, err = server.handleReindex(ctx, nil, ReindexInput{BookID: book.ID, Content: "too short"})
		assert.Error(t, err)
	})
}

func TestExtractCharacterID(t *testing.T) {
	assert.Equal(t, "char-1", extractCharacterID("lorebase://characters/char-1"))
	assert.Empty(t, extractCharacterID("lorebase://characters/"))
	assert.Empty(t, extractCharacterID("lorebase://characters/char-1/extra"))
	assert.Empty(t, extractCharacterID("lorebase://books"))
}
