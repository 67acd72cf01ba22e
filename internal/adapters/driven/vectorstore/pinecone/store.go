// Package pinecone provides a vector store adapter for the Pinecone
// data-plane REST API. The index must be pre-created with the embedding
// dimension (768 for embedding-001) and a dot-product metric.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds connection details for a Pinecone index.
type Config struct {
	// IndexHost is the index's data-plane base URL, e.g.
	// https://medmind-index-abc123.svc.us-east-1-aws.pinecone.io.
	IndexHost string

	// APIKey authenticates every request (required).
	APIKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a REST client to one Pinecone index.
type Store struct {
	client *http.Client
	host   string
	apiKey string
}

// NewStore creates a Pinecone-backed vector store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.IndexHost == "" {
		return nil, fmt.Errorf("pinecone: index host is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Store{
		client: &http.Client{Timeout: cfg.Timeout},
		host:   cfg.IndexHost,
		apiKey: cfg.APIKey,
	}, nil
}

// upsertVector is the wire format of one vector in an upsert request.
type upsertVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata"`
}

type upsertRequest struct {
	Vectors []upsertVector `json:"vectors"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

// Upsert writes all entries in one call. Pinecone overwrites existing
// ids, which gives the pipeline its idempotent re-ingestion.
func (s *Store) Upsert(ctx context.Context, entries []domain.IndexedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	req := upsertRequest{Vectors: make([]upsertVector, len(entries))}
	for i, e := range entries {
		req.Vectors[i] = upsertVector{ID: e.ID, Values: e.Vector, Metadata: e.Metadata}
	}

	if err := s.post(ctx, "/vectors/upsert", req, nil); err != nil {
		return fmt.Errorf("%w: upsert: %v", domain.ErrVectorStore, err)
	}
	return nil
}

// Query returns the topK nearest vectors with their metadata.
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]driven.VectorMatch, error) {
	req := queryRequest{Vector: vector, TopK: topK, IncludeMetadata: true}

	var resp queryResponse
	if err := s.post(ctx, "/query", req, &resp); err != nil {
		return nil, fmt.Errorf("%w: query: %v", domain.ErrVectorStore, err)
	}

	matches := make([]driven.VectorMatch, len(resp.Matches))
	for i, m := range resp.Matches {
		matches[i] = driven.VectorMatch{ID: m.ID, Score: m.Score, Metadata: m.Metadata}
	}
	return matches, nil
}

// Ping checks index reachability via describe_index_stats.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.post(ctx, "/describe_index_stats", struct{}{}, nil); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVectorStore, err)
	}
	return nil
}

func (s *Store) post(ctx context.Context, path string, body any, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.host+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone %s (status %d): %s", path, resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
