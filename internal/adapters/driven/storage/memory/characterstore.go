package memory

import (
	"context"
	"sync"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
)

// Ensure CharacterStore implements the interface.
var _ driven.CharacterStore = (*CharacterStore)(nil)

// CharacterStore is an in-memory implementation of driven.CharacterStore.
type CharacterStore struct {
	mu         sync.RWMutex
	characters map[string]domain.CharacterDefinition
}

// NewCharacterStore creates a new in-memory character store.
func NewCharacterStore() *CharacterStore {
	return &CharacterStore{
		characters: make(map[string]domain.CharacterDefinition),
	}
}

// SaveCharacter stores or updates a character definition.
func (s *CharacterStore) SaveCharacter(_ context.Context, def *domain.CharacterDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters[def.ID] = *def
	return nil
}

// GetCharacter retrieves a character by ID.
func (s *CharacterStore) GetCharacter(_ context.Context, id string) (*domain.CharacterDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.characters[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &def, nil
}

// ListCharacters returns characters owned by the given owner.
func (s *CharacterStore) ListCharacters(_ context.Context, ownerID string) ([]domain.CharacterDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var defs []domain.CharacterDefinition
	for id := range s.characters {
		def := s.characters[id]
		if def.OwnerID == ownerID {
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// DeleteCharacter removes a character.
func (s *CharacterStore) DeleteCharacter(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.characters, id)
	return nil
}
