package driven

import (
	"context"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// BookStore persists books and their index metadata.
// Backed by SQLite.
type BookStore interface {
	// SaveBook stores or updates a book record.
	SaveBook(ctx context.Context, book *domain.Book) error

	// GetBook retrieves a book by ID.
	GetBook(ctx context.Context, id string) (*domain.Book, error)

	// ListBooks returns books owned by the given owner.
	ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error)

	// DeleteBook removes a book and all its chunks.
	DeleteBook(ctx context.Context, id string) error

	// UpdateIndexMetadata replaces a book's index metadata, including the
	// active generation pointer. The swap is atomic: a reader sees either
	// the old metadata or the new, never a mix.
	UpdateIndexMetadata(ctx context.Context, bookID string, meta domain.BookIndexMetadata) error
}
