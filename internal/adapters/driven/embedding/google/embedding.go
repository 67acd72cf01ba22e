// Package google provides an embedding service adapter for the Google
// Generative Language API (embedding-001).
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel      = "embedding-001"
	DefaultTimeout    = 60 * time.Second
	DefaultDimensions = 768

	// Conservative defaults well under the provider's request quota.
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 10
)

// Task types steering the model towards document or query embeddings.
const (
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Config holds configuration for the Google embedding service.
type Config struct {
	// APIKey is the Google API key (required).
	APIKey string

	// BaseURL is the API base URL (default: the public endpoint).
	BaseURL string

	// Model is the embedding model (default: embedding-001).
	Model string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond and Burst bound the request rate to the
	// provider. Zero values select the defaults.
	RequestsPerSecond float64
	Burst             int
}

// EmbeddingService generates embeddings using the Google Generative
// Language REST API.
type EmbeddingService struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	model   string
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type embedContentRequest struct {
	Model    string  `json:"model"`
	Content  content `json:"content"`
	TaskType string  `json:"taskType,omitempty"`
}

type batchEmbedRequest struct {
	Requests []embedContentRequest `json:"requests"`
}

type embeddingValues struct {
	Values []float32 `json:"values"`
}

type embedContentResponse struct {
	Embedding embeddingValues `json:"embedding"`
	Error     *apiError       `json:"error,omitempty"`
}

type batchEmbedResponse struct {
	Embeddings []embeddingValues `json:"embeddings"`
	Error      *apiError         `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewEmbeddingService creates a new Google embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}

	return &EmbeddingService{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// maxBatchSize is the provider's cap on requests per
// batchEmbedContents call.
const maxBatchSize = 100

// EmbedDocuments embeds the texts in batchEmbedContents calls of at
// most maxBatchSize requests each, concatenating the index-ordered
// results.
func (s *EmbeddingService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(texts))
	url := fmt.Sprintf("%s/models/%s:batchEmbedContents", s.baseURL, s.model)
	for begin := 0; begin < len(texts); begin += maxBatchSize {
		end := begin + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		page := texts[begin:end]

		req := batchEmbedRequest{Requests: make([]embedContentRequest, len(page))}
		for i, text := range page {
			req.Requests[i] = embedContentRequest{
				Model:    "models/" + s.model,
				Content:  content{Parts: []contentPart{{Text: text}}},
				TaskType: taskRetrievalDocument,
			}
		}

		var resp batchEmbedResponse
		if err := s.post(ctx, url, req, &resp, func() *apiError { return resp.Error }); err != nil {
			return nil, err
		}
		for _, e := range resp.Embeddings {
			vectors = append(vectors, e.Values)
		}
	}
	return vectors, nil
}

// EmbedQuery embeds a single question.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	req := embedContentRequest{
		Model:    "models/" + s.model,
		Content:  content{Parts: []contentPart{{Text: text}}},
		TaskType: taskRetrievalQuery,
	}

	var resp embedContentResponse
	url := fmt.Sprintf("%s/models/%s:embedContent", s.baseURL, s.model)
	if err := s.post(ctx, url, req, &resp, func() *apiError { return resp.Error }); err != nil {
		return nil, err
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding returned", domain.ErrEmbedding)
	}
	return resp.Embedding.Values, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int { return DefaultDimensions }

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string { return s.model }

// Ping validates the API key by fetching the model descriptor.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: create ping request: %v", domain.ErrEmbedding, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ping status %d", domain.ErrEmbedding, resp.StatusCode)
	}
	return nil
}

func (s *EmbeddingService) post(ctx context.Context, url string, body any, out any, apiErr func() *apiError) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", domain.ErrEmbedding, err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", domain.ErrEmbedding, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"?key="+s.apiKey, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", domain.ErrEmbedding, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %v", domain.ErrEmbedding, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrEmbedding, err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrEmbedding, err)
	}
	if e := apiErr(); e != nil {
		return fmt.Errorf("%w: %s (%s)", domain.ErrEmbedding, e.Message, e.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", domain.ErrEmbedding, resp.StatusCode, string(respBody))
	}
	return nil
}
