package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the embedding provider, chunking parameters and
evaluation thresholds.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var embeddingInput struct {
	provider string
	model    string
	baseURL  string
	apiKey   string
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long: `Configure the embedding provider used for book indexing and passage
retrieval.

Available providers:
  ollama - Local Ollama instance (default, no API key required)
  openai - OpenAI cloud API (requires an API key)`,
	RunE: runSettingsEmbedding,
}

func init() {
	settingsEmbeddingCmd.Flags().StringVar(&embeddingInput.provider, "provider", "", "embedding provider (ollama or openai)")
	settingsEmbeddingCmd.Flags().StringVar(&embeddingInput.model, "model", "", "embedding model name")
	settingsEmbeddingCmd.Flags().StringVar(&embeddingInput.baseURL, "base-url", "", "provider endpoint override")
	settingsEmbeddingCmd.Flags().StringVar(&embeddingInput.apiKey, "api-key", "", "API key for cloud providers")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider)
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	}
	if settings.Embedding.Provider == domain.ProviderOpenAI {
		if settings.Embedding.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Embedding.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Println()

	cmd.Println("[Indexing]")
	cmd.Printf("  Chunk size: %d words\n", settings.Indexing.ChunkSize)
	cmd.Printf("  Chunk overlap: %d words\n", settings.Indexing.ChunkOverlap)
	cmd.Printf("  Batch size: %d\n", settings.Indexing.BatchSize)
	cmd.Printf("  Batch delay: %dms\n", settings.Indexing.BatchDelay/time.Millisecond)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Top K: %d\n", settings.Search.TopK)
	cmd.Printf("  Similarity threshold: %.2f\n", settings.Search.SimilarityThreshold)
	cmd.Println()

	cmd.Println("[Evaluation]")
	cmd.Printf("  Pass threshold: %d/35\n", settings.Evaluation.PassThreshold)
	cmd.Printf("  Ratings: excellent >= %d, good >= %d, acceptable >= %d, needs_work >= %d\n",
		settings.Evaluation.ExcellentMin, settings.Evaluation.GoodMin,
		settings.Evaluation.AcceptableMin, settings.Evaluation.NeedsWorkMin)
	cmd.Printf("  Drift threshold: %d points\n", settings.Evaluation.DriftThreshold)

	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if embeddingInput.provider != "" {
		provider := domain.EmbeddingProvider(embeddingInput.provider)
		if !provider.IsValid() {
			return fmt.Errorf("unknown provider %q (expected ollama or openai)", embeddingInput.provider)
		}
		settings.Embedding.Provider = provider
	}
	if embeddingInput.model != "" {
		settings.Embedding.Model = embeddingInput.model
	}
	if embeddingInput.baseURL != "" {
		settings.Embedding.BaseURL = embeddingInput.baseURL
	}
	if embeddingInput.apiKey != "" {
		settings.Embedding.APIKey = embeddingInput.apiKey
	}

	if settings.Embedding.Provider == domain.ProviderOpenAI && settings.Embedding.APIKey == "" {
		return errors.New("openai provider requires an API key")
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", settings.Embedding.Provider, settings.Embedding.Model)
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
