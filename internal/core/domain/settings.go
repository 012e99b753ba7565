package domain

import "time"

// EmbeddingProvider identifies an embedding model provider.
type EmbeddingProvider string

// Available embedding providers.
const (
	// ProviderOllama is a local Ollama instance.
	ProviderOllama EmbeddingProvider = "ollama"

	// ProviderOpenAI is the OpenAI cloud API.
	ProviderOpenAI EmbeddingProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// EmbeddingSettings configures the embedding provider adapter.
type EmbeddingSettings struct {
	// Provider selects the embedding backend.
	Provider EmbeddingProvider

	// Model is the embedding model name.
	Model string

	// BaseURL overrides the provider's default endpoint. Empty is valid
	// for cloud providers.
	BaseURL string

	// APIKey authenticates cloud providers. Unused by local providers.
	APIKey string
}

// AppSettings bundles every configurable knob of the application.
type AppSettings struct {
	Embedding  EmbeddingSettings
	Indexing   IndexingSettings
	Search     SearchSettings
	Evaluation EvaluationSettings
}

// IndexingSettings configures the embedding indexer.
type IndexingSettings struct {
	// ChunkSize is the chunk window size in words.
	ChunkSize int

	// ChunkOverlap is the overlap between consecutive windows in words.
	// Must be strictly less than ChunkSize.
	ChunkOverlap int

	// BatchSize is the number of chunks embedded concurrently per batch.
	BatchSize int

	// BatchDelay is the fixed pause between batches, respecting the
	// embedding provider's rate limit.
	BatchDelay time.Duration
}

// SearchSettings configures grounding retrieval.
type SearchSettings struct {
	// TopK is the maximum number of passages returned.
	TopK int

	// SimilarityThreshold is the relevance floor; passages at or below
	// it are dropped rather than used for grounding.
	SimilarityThreshold float64
}

// EvaluationSettings configures classification and drift detection.
// The rating boundaries are deliberately configuration, not hard-coded
// policy.
type EvaluationSettings struct {
	// PassThreshold is the minimum total score considered a pass.
	PassThreshold int

	// ExcellentMin, GoodMin, AcceptableMin and NeedsWorkMin are the
	// lower bounds of the rating buckets; totals below NeedsWorkMin
	// rate not_ready.
	ExcellentMin  int
	GoodMin       int
	AcceptableMin int
	NeedsWorkMin  int

	// DriftThreshold is the minimum absolute total-score delta between
	// two runs that raises a drift alert.
	DriftThreshold int
}

// DefaultAppSettings returns the full default configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: ProviderOllama,
			Model:    "nomic-embed-text",
		},
		Indexing:   DefaultIndexingSettings(),
		Search:     DefaultSearchSettings(),
		Evaluation: DefaultEvaluationSettings(),
	}
}

// DefaultIndexingSettings returns the standard indexer configuration.
func DefaultIndexingSettings() IndexingSettings {
	return IndexingSettings{
		ChunkSize:    400,
		ChunkOverlap: 50,
		BatchSize:    10,
		BatchDelay:   500 * time.Millisecond,
	}
}

// DefaultSearchSettings returns the standard retrieval configuration.
func DefaultSearchSettings() SearchSettings {
	return SearchSettings{
		TopK:                5,
		SimilarityThreshold: 0.3,
	}
}

// DefaultEvaluationSettings returns the standard classification
// configuration. Boundaries are a product decision surfaced through
// configuration; these defaults keep good aligned with the pass
// threshold.
func DefaultEvaluationSettings() EvaluationSettings {
	return EvaluationSettings{
		PassThreshold:  28,
		ExcellentMin:   32,
		GoodMin:        28,
		AcceptableMin:  24,
		NeedsWorkMin:   18,
		DriftThreshold: 3,
	}
}
