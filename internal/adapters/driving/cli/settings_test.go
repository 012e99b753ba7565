package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Show(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[Embedding]")
	assert.Contains(t, out, "Provider: ollama")
	assert.Contains(t, out, "Model: nomic-embed-text")
	assert.Contains(t, out, "Pass threshold: 28/35")
}

func TestSettingsCmd_EmbeddingRequiresKeyForOpenAI(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "settings", "embedding", "--provider", "openai")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestSettingsCmd_EmbeddingConfigure(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	out, err := executeCommand(t, "settings", "embedding",
		"--provider", "openai", "--model", "text-embedding-3-small", "--api-key", "sk-test")
	require.NoError(t, err)
	assert.Contains(t, out, "Embedding provider configured: openai (text-embedding-3-small)")

	out, err = executeCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider: openai")
	assert.Contains(t, out, "API Key: ****")
}

func TestSettingsCmd_EmbeddingRejectsUnknownProvider(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand(t, "settings", "embedding", "--provider", "carrier-pigeon")
	assert.Error(t, err)
}
