package driving

import (
	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to
	// defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider updates the embedding provider.
	SetEmbeddingProvider(provider domain.EmbeddingProvider) error
}
