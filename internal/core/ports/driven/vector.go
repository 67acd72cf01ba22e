package driven

import (
	"context"

	"github.com/aakifnehal/MedMind/internal/core/domain"
)

// VectorStore persists (id, vector, metadata) entries and answers
// nearest-neighbour queries. Upsert is idempotent per id: last write
// wins, which is what makes re-uploading a file a no-op in effect.
// Implementations must be safe for concurrent callers.
type VectorStore interface {
	// Upsert writes all entries in one batched call. Either the whole
	// batch lands or the call errors; there is no partial apply from
	// the caller's point of view.
	Upsert(ctx context.Context, entries []domain.IndexedEntry) error

	// Query returns the topK nearest entries to the vector, best
	// similarity first, with metadata included.
	Query(ctx context.Context, vector []float32, topK int) ([]VectorMatch, error)

	// Ping validates the index is reachable.
	Ping(ctx context.Context) error
}

// VectorMatch is a single similarity hit.
type VectorMatch struct {
	ID       string
	Score    float64
	Metadata map[string]any
}
