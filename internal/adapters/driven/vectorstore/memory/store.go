// Package memory provides an in-memory vector store for local mode and
// tests. Similarity is a brute-force dot-product scan, matching the
// metric the remote index is configured with.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store keeps entries in a map guarded by a mutex. Upsert is
// last-writer-wins per id.
type Store struct {
	mu      sync.RWMutex
	entries map[string]domain.IndexedEntry
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{entries: make(map[string]domain.IndexedEntry)}
}

// Upsert writes all entries, overwriting existing ids.
func (s *Store) Upsert(_ context.Context, entries []domain.IndexedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	return nil
}

// Query scores every entry against the vector and returns the topK by
// dot product, best first.
func (s *Store) Query(_ context.Context, vector []float32, topK int) ([]driven.VectorMatch, error) {
	if topK <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	matches := make([]driven.VectorMatch, 0, len(s.entries))
	for _, e := range s.entries {
		matches = append(matches, driven.VectorMatch{
			ID:       e.ID,
			Score:    dot(vector, e.Vector),
			Metadata: e.Metadata,
		})
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

// Ping always succeeds for the in-memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
