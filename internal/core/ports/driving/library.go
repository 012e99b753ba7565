package driving

import (
	"context"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// LibraryService manages books and character definitions.
type LibraryService interface {
	// AddBook creates a new book record for the owner.
	AddBook(ctx context.Context, ownerID, title, author string) (*domain.Book, error)

	// GetBook retrieves a book by ID.
	GetBook(ctx context.Context, id string) (*domain.Book, error)

	// ListBooks returns the owner's books.
	ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error)

	// RemoveBook deletes a book and its chunks. The caller must own the
	// book.
	RemoveBook(ctx context.Context, ownerID, id string) error

	// AddCharacter creates a character from loosely-typed input,
	// resolving optional fields through the defaulting constructor.
	AddCharacter(ctx context.Context, ownerID string, in domain.CharacterInput) (*domain.CharacterDefinition, error)

	// GetCharacter retrieves a character by ID.
	GetCharacter(ctx context.Context, id string) (*domain.CharacterDefinition, error)

	// ListCharacters returns the owner's characters.
	ListCharacters(ctx context.Context, ownerID string) ([]domain.CharacterDefinition, error)

	// RemoveCharacter deletes a character. The caller must own it.
	RemoveCharacter(ctx context.Context, ownerID, id string) error

	// DefinitionHash returns the current content fingerprint of a
	// character's behavior-relevant fields.
	DefinitionHash(ctx context.Context, id string) (string, error)
}
