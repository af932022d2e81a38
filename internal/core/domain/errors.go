package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunking indicates chunk size and overlap cannot make progress.
	ErrInvalidChunking = fmt.Errorf("%w: chunk overlap must be smaller than chunk size", ErrInvalidInput)

	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Loader Errors.

	// ErrSourceUnavailable indicates a documentation file is missing or unreadable.
	// The loader records it and moves on.
	ErrSourceUnavailable = errors.New("source unavailable")

	// Embedding Errors.

	// ErrEmbeddingFailure indicates the provider could not produce a vector.
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrEmbeddingUnavailable indicates no embedding provider is configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Index Store Errors.

	// ErrIndexNotFound indicates no index has been persisted yet.
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexCorrupt indicates persisted index data could not be decoded
	// or violates the index invariants.
	ErrIndexCorrupt = errors.New("index corrupt")

	// ErrStoreUnavailable indicates the index store could not be reached.
	ErrStoreUnavailable = errors.New("index store unavailable")
)
