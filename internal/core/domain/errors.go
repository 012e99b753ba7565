package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or undersized input.
	// Surfaced to callers as a validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates an impossible configuration,
	// such as a chunk overlap that equals or exceeds the chunk size.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPermissionDenied indicates the caller does not own the entity.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDimensionMismatch indicates two embedding vectors of different
	// lengths were compared. All embeddings in a deployment must share
	// the same dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingFailed indicates a transient embedding model failure.
	// During indexing this is a chunk-level skip, never a job abort.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Grounding search and indexing are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrInternal indicates an unexpected failure. The original cause is
	// wrapped for diagnostics.
	ErrInternal = errors.New("internal error")
)
