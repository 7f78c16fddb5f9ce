package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorpusUnavailable indicates the corpus could not be loaded:
	// cache artifacts are missing and the remote fetch failed, an artifact
	// is unparsable, or the index and metadata are misaligned. Fatal for
	// the search subsystem; no partial corpus is ever served.
	ErrCorpusUnavailable = errors.New("corpus unavailable")

	// ErrEmbeddingUnavailable indicates no embedding service is configured.
	// Semantic search is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrEmbeddingService indicates the embedding call for a query failed.
	// Fatal for that query only; the corpus remains usable and the next
	// query may retry independently.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrAuthInvalid indicates the supplied credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")
)
