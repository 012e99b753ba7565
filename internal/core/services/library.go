package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driving"
	"github.com/storyloom-labs/lorebase/internal/fingerprint"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// Library manages books and character definitions with ownership
// checks on every mutation.
type Library struct {
	bookStore      driven.BookStore
	chunkStore     driven.ChunkStore
	characterStore driven.CharacterStore
}

// NewLibrary creates a library service.
func NewLibrary(
	bookStore driven.BookStore,
	chunkStore driven.ChunkStore,
	characterStore driven.CharacterStore,
) *Library {
	return &Library{
		bookStore:      bookStore,
		chunkStore:     chunkStore,
		characterStore: characterStore,
	}
}

// AddBook creates a new book record for the owner.
func (l *Library) AddBook(ctx context.Context, ownerID, title, author string) (*domain.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("book title is required: %w", domain.ErrInvalidInput)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}

	book := &domain.Book{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Author:    strings.TrimSpace(author),
		CreatedAt: time.Now().UTC(),
	}
	if err := l.bookStore.SaveBook(ctx, book); err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}
	return book, nil
}

// GetBook retrieves a book by ID.
func (l *Library) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return l.bookStore.GetBook(ctx, id)
}

// ListBooks returns the owner's books.
func (l *Library) ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error) {
	return l.bookStore.ListBooks(ctx, ownerID)
}

// RemoveBook deletes a book and all its chunks. The caller must own
// the book.
func (l *Library) RemoveBook(ctx context.Context, ownerID, id string) error {
	book, err := l.bookStore.GetBook(ctx, id)
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}
	if book.OwnerID != ownerID {
		return fmt.Errorf("remove book %s: %w", id, domain.ErrPermissionDenied)
	}

	if err := l.chunkStore.DeleteChunks(ctx, id); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := l.bookStore.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// AddCharacter creates a character from loosely-typed input. Optional
// fields are resolved once by the defaulting constructor rather than at
// each read site.
func (l *Library) AddCharacter(ctx context.Context, ownerID string, in domain.CharacterInput) (*domain.CharacterDefinition, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("character name is required: %w", domain.ErrInvalidInput)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner is required: %w", domain.ErrInvalidInput)
	}

	if in.BookID != "" {
		book, err := l.bookStore.GetBook(ctx, in.BookID)
		if err != nil {
			return nil, fmt.Errorf("get grounding book: %w", err)
		}
		if book.OwnerID != ownerID {
			return nil, fmt.Errorf("book %s: %w", in.BookID, domain.ErrPermissionDenied)
		}
	}

	def := domain.NewCharacterDefinition(uuid.New().String(), ownerID, in, time.Now().UTC())
	if err := l.characterStore.SaveCharacter(ctx, &def); err != nil {
		return nil, fmt.Errorf("save character: %w", err)
	}
	return &def, nil
}

// GetCharacter retrieves a character by ID.
func (l *Library) GetCharacter(ctx context.Context, id string) (*domain.CharacterDefinition, error) {
	return l.characterStore.GetCharacter(ctx, id)
}

// ListCharacters returns the owner's characters.
func (l *Library) ListCharacters(ctx context.Context, ownerID string) ([]domain.CharacterDefinition, error) {
	return l.characterStore.ListCharacters(ctx, ownerID)
}

// RemoveCharacter deletes a character. The caller must own it.
func (l *Library) RemoveCharacter(ctx context.Context, ownerID, id string) error {
	def, err := l.characterStore.GetCharacter(ctx, id)
	if err != nil {
		return fmt.Errorf("get character: %w", err)
	}
	if def.OwnerID != ownerID {
		return fmt.Errorf("remove character %s: %w", id, domain.ErrPermissionDenied)
	}
	return l.characterStore.DeleteCharacter(ctx, id)
}

// DefinitionHash returns the current content fingerprint of a
// character's behavior-relevant fields.
func (l *Library) DefinitionHash(ctx context.Context, id string) (string, error) {
	def, err := l.characterStore.GetCharacter(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get character: %w", err)
	}
	return fingerprint.HashDefinition(*def), nil
}
