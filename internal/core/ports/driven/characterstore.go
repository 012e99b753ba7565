package driven

import (
	"context"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// CharacterStore persists character definitions.
type CharacterStore interface {
	// SaveCharacter stores or updates a character definition.
	SaveCharacter(ctx context.Context, def *domain.CharacterDefinition) error

	// GetCharacter retrieves a character by ID.
	GetCharacter(ctx context.Context, id string) (*domain.CharacterDefinition, error)

	// ListCharacters returns characters owned by the given owner.
	ListCharacters(ctx context.Context, ownerID string) ([]domain.CharacterDefinition, error)

	// DeleteCharacter removes a character.
	DeleteCharacter(ctx context.Context, id string) error
}
