package domain

import "time"

// Book represents an uploaded book together with its indexing metadata.
// The metadata fields are mutated only after a full re-index completes.
type Book struct {
	// ID is the unique identifier for the book.
	ID string

	// OwnerID identifies the author who uploaded the book.
	// All mutating operations check ownership against this field.
	OwnerID string

	// Title is the human-readable title.
	Title string

	// Author is the book's author, if known.
	Author string

	// HasContent reports whether the book has been indexed at least once.
	HasContent bool

	// ChunkCount is the number of chunks in the active generation.
	ChunkCount int

	// ContentLength is the character length of the last indexed content.
	ContentLength int

	// ActiveGeneration identifies the chunk generation served by search.
	// Re-indexing writes a new generation and swaps this pointer once the
	// generation is complete, so retrieval never observes a half-written
	// index.
	ActiveGeneration string

	// ContentUpdatedAt is when the last re-index completed.
	ContentUpdatedAt time.Time

	// CreatedAt is when the book record was created.
	CreatedAt time.Time
}

// BookIndexMetadata is the subset of Book mutated by a re-index.
type BookIndexMetadata struct {
	HasContent       bool
	ChunkCount       int
	ContentLength    int
	ActiveGeneration string
	ContentUpdatedAt time.Time
}
