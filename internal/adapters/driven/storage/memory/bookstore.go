// Package memory provides in-memory store implementations used by
// tests and by ephemeral setups that do not need durability.
package memory

import (
	"context"
	"sync"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
)

// Ensure BookStore implements the interface.
var _ driven.BookStore = (*BookStore)(nil)

// BookStore is an in-memory implementation of driven.BookStore.
type BookStore struct {
	mu    sync.RWMutex
	books map[string]domain.Book
}

// NewBookStore creates a new in-memory book store.
func NewBookStore() *BookStore {
	return &BookStore{
		books: make(map[string]domain.Book),
	}
}

// SaveBook stores or updates a book record.
func (s *BookStore) SaveBook(_ context.Context, book *domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[book.ID] = *book
	return nil
}

// GetBook retrieves a book by ID.
func (s *BookStore) GetBook(_ context.Context, id string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	book, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &book, nil
}

// ListBooks returns books owned by the given owner.
func (s *BookStore) ListBooks(_ context.Context, ownerID string) ([]domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var books []domain.Book
	for id := range s.books {
		book := s.books[id]
		if book.OwnerID == ownerID {
			books = append(books, book)
		}
	}
	return books, nil
}

// DeleteBook removes a book.
func (s *BookStore) DeleteBook(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books, id)
	return nil
}

// UpdateIndexMetadata replaces a book's index metadata.
func (s *BookStore) UpdateIndexMetadata(_ context.Context, bookID string, meta domain.BookIndexMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok {
		return domain.ErrNotFound
	}
	book.HasContent = meta.HasContent
	book.ChunkCount = meta.ChunkCount
	book.ContentLength = meta.ContentLength
	book.ActiveGeneration = meta.ActiveGeneration
	book.ContentUpdatedAt = meta.ContentUpdatedAt
	s.books[bookID] = book
	return nil
}
