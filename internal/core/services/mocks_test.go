package services

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
)

// --- Mock implementations of the driven ports ---

// mockFileStore implements driven.FileStore.
type mockFileStore struct {
	mu      sync.Mutex
	saved   []string
	saveErr error
}

func (m *mockFileStore) Save(_ context.Context, filename string, content io.Reader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	if content != nil {
		_, _ = io.Copy(io.Discard, content)
	}
	m.mu.Lock()
	m.saved = append(m.saved, filename)
	m.mu.Unlock()
	return filepath.Join("/tmp/uploads", filename), nil
}

// mockExtractor implements driven.TextExtractor. Pages are keyed by
// the stored file's base name; missing keys fail with errFor or a
// default extraction error.
type mockExtractor struct {
	pages  map[string][]domain.Page
	errFor map[string]error
}

func (m *mockExtractor) Extract(_ context.Context, path string) ([]domain.Page, error) {
	name := filepath.Base(path)
	if err, ok := m.errFor[name]; ok {
		return nil, err
	}
	return m.pages[name], nil
}

// mockEmbedder implements driven.EmbeddingService with deterministic
// three-dimensional vectors.
type mockEmbedder struct {
	mu          sync.Mutex
	batchCalls  int
	batchSizes  []int
	queryCalls  int
	embedErr    error
	queryErr    error
	shortOutput bool // return one vector fewer than requested
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	return []float32{float32(len(text)), 1, 0}
}

func (m *mockEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.batchCalls++
	m.batchSizes = append(m.batchSizes, len(texts))
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	n := len(texts)
	if m.shortOutput && n > 0 {
		n--
	}
	out := make([][]float32, 0, n)
	for _, text := range texts[:n] {
		out = append(out, m.vectorFor(text))
	}
	return out, nil
}

func (m *mockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.queryCalls++
	m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) Dimensions() int { return 3 }

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

// mockVectorStore implements driven.VectorStore and records upserts.
type mockVectorStore struct {
	mu          sync.Mutex
	upsertCalls int
	entries     map[string]domain.IndexedEntry
	matches     []driven.VectorMatch
	upsertErr   error
	queryErr    error
	lastTopK    int
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{entries: make(map[string]domain.IndexedEntry)}
}

func (m *mockVectorStore) Upsert(_ context.Context, entries []domain.IndexedEntry) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	for _, e := range entries {
		m.entries[e.ID] = e
	}
	return nil
}

func (m *mockVectorStore) Query(_ context.Context, _ []float32, topK int) ([]driven.VectorMatch, error) {
	m.mu.Lock()
	m.lastTopK = topK
	m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if topK < len(m.matches) {
		return m.matches[:topK], nil
	}
	return m.matches, nil
}

func (m *mockVectorStore) Ping(_ context.Context) error { return nil }

// mockModel implements driven.GenerativeModel.
type mockModel struct {
	mu       sync.Mutex
	calls    int
	prompts  []string
	response string
	err      error
}

func (m *mockModel) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockModel) ModelName() string { return "mock-llm" }

func (m *mockModel) Ping(_ context.Context) error { return nil }

// mockRetriever implements driving.Retriever.
type mockRetriever struct {
	passages []domain.RetrievedPassage
	err      error
	lastTopK int
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, topK int) ([]domain.RetrievedPassage, error) {
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	return m.passages, nil
}
