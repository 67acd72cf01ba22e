package driven

import "context"

// EmbeddingService maps text to fixed-length dense vectors.
//
// Implementations may include:
//   - Google Generative Language (embedding-001, 768 dimensions)
//   - OpenAI-compatible /embeddings endpoints
type EmbeddingService interface {
	// EmbedDocuments embeds a batch of chunk texts in one provider
	// call. The result is index-aligned with texts; a count mismatch
	// is a provider bug and callers treat it as an embedding failure.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single question.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size. It must match the
	// vector index configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the provider is reachable. Used at startup so a
	// misconfigured key fails loudly before the first upload.
	Ping(ctx context.Context) error
}
