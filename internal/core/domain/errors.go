package domain

import "errors"

// Domain errors represent pipeline failures. Adapters wrap their
// infrastructure errors with the matching sentinel so callers can
// classify failures with errors.Is.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction indicates a file is not a parseable PDF or yielded
	// no text. Per-file: it never aborts the rest of an upload batch.
	ErrExtraction = errors.New("text extraction failed")

	// ErrEmbedding indicates the embedding provider failed or returned
	// a malformed result. Fatal for the affected document or query.
	ErrEmbedding = errors.New("embedding failed")

	// ErrVectorStore indicates the vector index is unavailable or
	// rejected the call. Fatal for the affected call.
	ErrVectorStore = errors.New("vector store unavailable")

	// ErrGeneration indicates the generative model call failed. Once
	// retrieval succeeded this is downgraded to a canned answer rather
	// than surfaced as a request failure.
	ErrGeneration = errors.New("generation failed")
)
