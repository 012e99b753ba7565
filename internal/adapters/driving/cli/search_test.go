package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBookFile(t *testing.T, words int) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < words; i++ {
		b.WriteString("word")
		b.WriteString(strings.Repeat("x", i%5))
		b.WriteString(" ")
	}
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0600))
	return path
}

func TestIndexCmd_IndexesBookFile(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "book", "add", "Emma")
	require.NoError(t, err)
	id := bookIDFromAddOutput(t, out)

	out, err = executeCommand(t, "index", id, writeBookFile(t, 500))
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed")

	out, err = executeCommand(t, "book", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "chunks over")
}

func TestIndexCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "book", "add", "Emma")
	require.NoError(t, err)
	id := bookIDFromAddOutput(t, out)

	_, err = executeCommand(t, "index", id, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSearchCmd_ReturnsIndexedPassages(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "book", "add", "Emma")
	require.NoError(t, err)
	id := bookIDFromAddOutput(t, out)

	_, err = executeCommand(t, "index", id, writeBookFile(t, 500))
	require.NoError(t, err)

	out, err = executeCommand(t, "search", id, "who is mr knightley")
	require.NoError(t, err)
	assert.Contains(t, out, "Passages:")
}

func TestSearchCmd_UnindexedBook(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "book", "add", "Emma")
	require.NoError(t, err)
	id := bookIDFromAddOutput(t, out)

	out, err = executeCommand(t, "search", id, "anything")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching passages.")
}

func TestSearchCmd_UnknownBook(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "search", "missing-book", "anything")
	assert.Error(t, err)
}

func TestSearchCmd_HasTopKFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
}
