package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakifnehal/MedMind/internal/core/domain"
)

func newTestModel(t *testing.T, handler http.HandlerFunc) *Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m, err := NewModel(Config{APIKey: "gsk-test", BaseURL: srv.URL})
	require.NoError(t, err)
	return m
}

func TestGenerate(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"The diagnosis is mild hypertension."}}]}`))
	})

	out, err := m.Generate(context.Background(), "What is the diagnosis?")
	require.NoError(t, err)
	assert.Contains(t, out, "hypertension")
}

func TestGenerate_ErrorWrapsSentinel(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit reached","type":"tokens"}}`))
	})

	_, err := m.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, domain.ErrGeneration)
}

func TestGenerate_NoChoices(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := m.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, domain.ErrGeneration)
}

func TestNewModel_RequiresKey(t *testing.T) {
	_, err := NewModel(Config{})
	assert.Error(t, err)
}
