package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakifnehal/MedMind/internal/adapters/driven/vectorstore/memory"
	"github.com/aakifnehal/MedMind/internal/chunker"
	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driving"
	"github.com/aakifnehal/MedMind/internal/logger"
)

// Runs the full upload-then-ask flow against the real chunker and the
// in-memory vector store, with deterministic embedding and generation.
func TestPipeline_UploadThenAsk(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	files := &mockFileStore{}
	extractor := &mockExtractor{pages: map[string][]domain.Page{
		"report.pdf": {
			{Number: 1, Text: "Patient presents with elevated blood pressure over three visits."},
			{Number: 2, Text: "Diagnosis: mild hypertension. Recommend lifestyle changes and a follow-up in three months."},
		},
	}}
	embedder := &mockEmbedder{}
	store := memory.NewStore()
	model := &mockModel{response: "The diagnosis is mild hypertension."}

	ingestor := NewIngestionService(files, extractor, chunker.New(), embedder, store, log, 0)
	retriever := NewRetrievalService(embedder, store, log)
	answerer := NewAnswerService(retriever, model, log, 3)

	report, err := ingestor.Ingest(ctx, []driving.FileUpload{
		{Filename: "report.pdf", Content: strings.NewReader("%PDF-1.4")},
	})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)
	require.True(t, report.Files[0].Succeeded())

	// One chunk per page, embedded in a single batch.
	assert.Equal(t, 2, report.Files[0].Chunks)
	assert.Equal(t, 1, embedder.batchCalls)
	assert.Equal(t, 2, store.Len())

	answer, err := answerer.Ask(ctx, "What is the diagnosis?")
	require.NoError(t, err)

	assert.Contains(t, answer.Response, "hypertension")
	assert.Equal(t, []string{"report.pdf"}, answer.Sources)
	assert.Equal(t, 1, embedder.queryCalls)

	// The prompt fed to the model carries the retrieved passage.
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "hypertension")
	assert.Contains(t, model.prompts[0], "What is the diagnosis?")
}

// Asking before any upload must produce the canned answer without
// touching the model.
func TestPipeline_AskBeforeUpload(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	embedder := &mockEmbedder{}
	store := memory.NewStore()
	model := &mockModel{response: "should never be used"}

	retriever := NewRetrievalService(embedder, store, log)
	answerer := NewAnswerService(retriever, model, log, 3)

	answer, err := answerer.Ask(ctx, "What is the diagnosis?")
	require.NoError(t, err)

	assert.Equal(t, NoContextAnswer, answer.Response)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 0, model.calls)
}
