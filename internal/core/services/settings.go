package services

import (
	"fmt"
	"time"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedAPIKey    = "embedding.api_key"
	keyChunkSize      = "indexing.chunk_size"
	keyChunkOverlap   = "indexing.chunk_overlap"
	keyBatchSize      = "indexing.batch_size"
	keyBatchDelayMS   = "indexing.batch_delay_ms"
	keyTopK           = "search.top_k"
	keySimThreshold   = "search.similarity_threshold"
	keyPassThreshold  = "evaluation.pass_threshold"
	keyExcellentMin   = "evaluation.excellent_min"
	keyGoodMin        = "evaluation.good_min"
	keyAcceptableMin  = "evaluation.acceptable_min"
	keyNeedsWorkMin   = "evaluation.needs_work_min"
	keyDriftThreshold = "evaluation.drift_threshold"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Unset keys fall back to
// defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		Indexing: domain.IndexingSettings{
			ChunkSize:    s.getInt(keyChunkSize, defaults.Indexing.ChunkSize),
			ChunkOverlap: s.getInt(keyChunkOverlap, defaults.Indexing.ChunkOverlap),
			BatchSize:    s.getInt(keyBatchSize, defaults.Indexing.BatchSize),
			BatchDelay:   s.getDuration(keyBatchDelayMS, defaults.Indexing.BatchDelay),
		},
		Search: domain.SearchSettings{
			TopK:                s.getInt(keyTopK, defaults.Search.TopK),
			SimilarityThreshold: s.getFloat(keySimThreshold, defaults.Search.SimilarityThreshold),
		},
		Evaluation: domain.EvaluationSettings{
			PassThreshold:  s.getInt(keyPassThreshold, defaults.Evaluation.PassThreshold),
			ExcellentMin:   s.getInt(keyExcellentMin, defaults.Evaluation.ExcellentMin),
			GoodMin:        s.getInt(keyGoodMin, defaults.Evaluation.GoodMin),
			AcceptableMin:  s.getInt(keyAcceptableMin, defaults.Evaluation.AcceptableMin),
			NeedsWorkMin:   s.getInt(keyNeedsWorkMin, defaults.Evaluation.NeedsWorkMin),
			DriftThreshold: s.getInt(keyDriftThreshold, defaults.Evaluation.DriftThreshold),
		},
	}

	if settings.Indexing.ChunkOverlap >= settings.Indexing.ChunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d: %w",
			settings.Indexing.ChunkOverlap, settings.Indexing.ChunkSize, domain.ErrInvalidConfig)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Embedding.Provider.IsValid() {
		return fmt.Errorf("invalid embedding provider %q: %w", settings.Embedding.Provider, domain.ErrInvalidConfig)
	}
	if settings.Indexing.ChunkOverlap >= settings.Indexing.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d: %w",
			settings.Indexing.ChunkOverlap, settings.Indexing.ChunkSize, domain.ErrInvalidConfig)
	}

	pairs := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyChunkSize, settings.Indexing.ChunkSize},
		{keyChunkOverlap, settings.Indexing.ChunkOverlap},
		{keyBatchSize, settings.Indexing.BatchSize},
		{keyBatchDelayMS, int(settings.Indexing.BatchDelay / time.Millisecond)},
		{keyTopK, settings.Search.TopK},
		{keySimThreshold, settings.Search.SimilarityThreshold},
		{keyPassThreshold, settings.Evaluation.PassThreshold},
		{keyExcellentMin, settings.Evaluation.ExcellentMin},
		{keyGoodMin, settings.Evaluation.GoodMin},
		{keyAcceptableMin, settings.Evaluation.AcceptableMin},
		{keyNeedsWorkMin, settings.Evaluation.NeedsWorkMin},
		{keyDriftThreshold, settings.Evaluation.DriftThreshold},
	}
	for _, pair := range pairs {
		if err := s.configStore.Set(pair.key, pair.value); err != nil {
			return fmt.Errorf("save %s: %w", pair.key, err)
		}
	}

	// API keys are only written when non-empty so a blank value cannot
	// wipe an existing key.
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}

	return nil
}

// SetEmbeddingProvider updates the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.EmbeddingProvider) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider %q: %w", provider, domain.ErrInvalidConfig)
	}
	return s.configStore.Set(keyEmbedProvider, provider.String())
}

func (s *SettingsService) getProvider(fallback domain.EmbeddingProvider) domain.EmbeddingProvider {
	provider := domain.EmbeddingProvider(s.configStore.GetString(keyEmbedProvider))
	if !provider.IsValid() {
		return fallback
	}
	return provider
}

func (s *SettingsService) getString(key, fallback string) string {
	if value := s.configStore.GetString(key); value != "" {
		return value
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if value := s.configStore.GetInt(key); value > 0 {
		return value
	}
	return fallback
}

func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if value := s.configStore.GetFloat(key); value > 0 {
		return value
	}
	return fallback
}

func (s *SettingsService) getDuration(key string, fallback time.Duration) time.Duration {
	if ms := s.configStore.GetInt(key); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
