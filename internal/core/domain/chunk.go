package domain

import "time"

// Chunk is a contiguous slice of book text stored with its embedding
// vector for retrieval. Chunks are immutable once written; the full set
// for a book is replaced wholesale on re-index.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// BookID links to the owning Book.
	BookID string

	// Generation identifies the index generation this chunk belongs to.
	Generation string

	// Index is the ordinal position within the book.
	Index int

	// Content is the chunk text.
	Content string

	// Embedding is the vector representation for similarity search.
	// All embeddings for a deployment share the same dimension.
	Embedding []float32

	// WordCount is the number of whitespace-separated words in Content.
	WordCount int

	// CreatedAt is when the chunk was written.
	CreatedAt time.Time
}

// Passage is a single grounding search hit.
type Passage struct {
	// Content is the matched chunk text.
	Content string

	// Similarity is the cosine similarity against the query embedding,
	// in [-1, 1].
	Similarity float64
}

// IndexSummary reports the outcome of a re-index job. ChunksProcessed
// counts only successfully embedded chunks; a partial result is a
// first-class outcome, not an error.
type IndexSummary struct {
	ChunksProcessed int
	TotalChunks     int
}
