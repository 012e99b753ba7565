package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyloom-labs/lorebase/internal/adapters/driven/storage/memory"
	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

func newLibraryFixture() (*Library, *memory.BookStore, *memory.ChunkStore, *memory.CharacterStore) {
	books := memory.NewBookStore()
	chunks := memory.NewChunkStore()
	characters := memory.NewCharacterStore()
	return NewLibrary(books, chunks, characters), books, chunks, characters
}

func TestLibrary_Books(t *testing.T) {
	ctx := context.Background()

	t.Run("add and get", func(t *testing.T) {
		lib, _, _, _ := newLibraryFixture()

		book, err := lib.AddBook(ctx, "owner-1", "  Pride and Prejudice ", "Jane Austen")
		require.NoError(t, err)
		assert.NotEmpty(t, book.ID)
		assert.Equal(t, "Pride and Prejudice", book.Title)
		assert.False(t, book.HasContent)

		got, err := lib.GetBook(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, book.ID, got.ID)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		lib, _, _, _ := newLibraryFixture()
		_, err := lib.AddBook(ctx, "owner-1", "   ", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("list filters by owner", func(t *testing.T) {
		lib, _, _, _ := newLibraryFixture()
		_, err := lib.AddBook(ctx, "owner-1", "Book A", "")
		require.NoError(t, err)
		_, err = lib.AddBook(ctx, "owner-2", "Book B", "")
		require.NoError(t, err)

		books, err := lib.ListBooks(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Book A", books[0].Title)
	})

	t.Run("remove requires ownership", func(t *testing.T) {
		lib, _, _, _ := newLibraryFixture()
		book, err := lib.AddBook(ctx, "owner-1", "Book A", "")
		require.NoError(t, err)

		err = lib.RemoveBook(ctx, "intruder", book.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)

		require.NoError(t, lib.RemoveBook(ctx, "owner-1", book.ID))
		_, err = lib.GetBook(ctx, book.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("remove deletes chunks", func(t *testing.T) {
		lib, _, chunks, _ := newLibraryFixture()
		book, err := lib.AddBook(ctx, "owner-1", "Book A", "")
		require.NoError(t, err)

		require.NoError(t, chunks.SaveChunks(ctx, []domain.Chunk{
			{ID: "c1", BookID: book.ID, Generation: "gen-1", Content: "passage"},
		}))

		require.NoError(t, lib.RemoveBook(ctx, "owner-1", book.ID))
		remaining, err := chunks.GetChunks(ctx, book.ID, "gen-1")
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}

func TestLibrary_Characters(t *testing.T) {
	ctx := context.Background()

	t.Run("add applies defaults", func(t *testing.T) {
		lib, _, _, _ := newLibraryFixture()

		def, err := lib.AddCharacter(ctx, "owner-1", domain.CharacterInput{Name: "Elizabeth Bennet"})
		require.NoError(t, err)
		assert.NotEmpty(t, def.ID)
		assert.NotNil(t, def.Knowledge)
		assert.Empty(t, def.Knowledge)
		assert.False(t, def.CreatedAt.IsZero())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		lib, _, _, _ := newLibraryFixture()
		_, err := lib.AddCharacter(ctx, "owner-1", domain.CharacterInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("grounding book must belong to owner", func(t *testing.T) {
		lib, _, _, _ := newLibraryFixture()
		book, err := lib.AddBook(ctx, "owner-2", "Someone else's book", "")
		require.NoError(t, err)

		_, err = lib.AddCharacter(ctx, "owner-1", domain.CharacterInput{Name: "Elizabeth", BookID: book.ID})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("definition hash tracks edits", func(t *testing.T) {
		lib, _, _, characters := newLibraryFixture()
		def, err := lib.AddCharacter(ctx, "owner-1", domain.CharacterInput{Name: "Elizabeth", Voice: "dry"})
		require.NoError(t, err)

		before, err := lib.DefinitionHash(ctx, def.ID)
		require.NoError(t, err)
		assert.Len(t, before, 12)

		def.Voice = "earnest"
		require.NoError(t, characters.SaveCharacter(ctx, def))

		after, err := lib.DefinitionHash(ctx, def.ID)
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
	})

	t.Run("remove requires ownership", func(t *testing.T) {
		lib, _, _, _ := newLibraryFixture()
		def, err := lib.AddCharacter(ctx, "owner-1", domain.CharacterInput{Name: "Elizabeth"})
		require.NoError(t, err)

		err = lib.RemoveCharacter(ctx, "intruder", def.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)

		require.NoError(t, lib.RemoveCharacter(ctx, "owner-1", def.ID))
		_, err = lib.GetCharacter(ctx, def.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
