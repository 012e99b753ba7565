// Command lorebase is the entry point for the lorebase CLI.
package main

import (
	"fmt"
	"os"

	"github.com/storyloom-labs/lorebase/internal/adapters/driven/config/file"
	"github.com/storyloom-labs/lorebase/internal/adapters/driven/embedding/ollama"
	"github.com/storyloom-labs/lorebase/internal/adapters/driven/embedding/openai"
	"github.com/storyloom-labs/lorebase/internal/adapters/driven/storage/sqlite"
	"github.com/storyloom-labs/lorebase/internal/adapters/driven/watcher"
	"github.com/storyloom-labs/lorebase/internal/adapters/driving/cli"
	"github.com/storyloom-labs/lorebase/internal/chunker"
	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close() //nolint:errcheck // Best-effort close on exit

	embedder, err := newEmbedder(settings.Embedding)
	if err != nil {
		return err
	}

	ck, err := chunker.New(
		chunker.WithChunkSize(settings.Indexing.ChunkSize),
		chunker.WithOverlap(settings.Indexing.ChunkOverlap),
	)
	if err != nil {
		return fmt.Errorf("configure chunker: %w", err)
	}

	books := store.BookStore()
	chunks := store.ChunkStore()
	characters := store.CharacterStore()
	reports := store.ReportStore()
	evals := store.EvaluationStore()

	cli.SetServices(cli.Services{
		Library:    services.NewLibrary(books, chunks, characters),
		Indexing:   services.NewIndexerService(books, chunks, embedder, ck, settings.Indexing),
		Grounding:  services.NewGroundingService(books, chunks, embedder, settings.Search),
		Evaluation: services.NewEvaluationService(characters, reports, evals, settings.Evaluation),
		Settings:   settingsService,
		NewWatcher: func() (driven.LibraryWatcher, error) {
			return watcher.New()
		},
	})
	cli.SetVersion(version)

	return cli.Execute()
}

func newEmbedder(cfg domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case domain.ProviderOpenAI:
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("configure openai embeddings: %w", err)
		}
		return svc, nil
	case domain.ProviderOllama:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidConfig, cfg.Provider)
	}
}
