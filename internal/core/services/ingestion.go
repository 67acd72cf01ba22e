package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
	"github.com/aakifnehal/MedMind/internal/core/ports/driving"
	"github.com/aakifnehal/MedMind/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.Ingestor = (*IngestionService)(nil)

// DefaultIngestConcurrency bounds how many documents are processed in
// parallel, keeping the embedding provider under its rate limits.
const DefaultIngestConcurrency = 4

// IngestionService runs the ingestion pipeline: stage the raw file,
// extract per-page text, chunk, embed the chunk texts in one batch and
// upsert the vectors in one batch.
type IngestionService struct {
	files       driven.FileStore
	extractor   driven.TextExtractor
	chunker     driven.Chunker
	embedder    driven.EmbeddingService
	store       driven.VectorStore
	log         *logger.Logger
	concurrency int
}

// NewIngestionService creates an ingestion service. concurrency <= 0
// selects DefaultIngestConcurrency.
func NewIngestionService(
	files driven.FileStore,
	extractor driven.TextExtractor,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	log *logger.Logger,
	concurrency int,
) *IngestionService {
	if concurrency <= 0 {
		concurrency = DefaultIngestConcurrency
	}
	return &IngestionService{
		files:       files,
		extractor:   extractor,
		chunker:     chunker,
		embedder:    embedder,
		store:       store,
		log:         log,
		concurrency: concurrency,
	}
}

// Ingest processes each upload independently. Files run concurrently up
// to the configured limit; within one file, embedding strictly precedes
// upsert. A failed file is recorded in the report and never aborts its
// siblings.
func (s *IngestionService) Ingest(ctx context.Context, uploads []driving.FileUpload) (*domain.IngestionReport, error) {
	report := &domain.IngestionReport{Files: make([]domain.FileResult, len(uploads))}

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, upload := range uploads {
		i, upload := i, upload
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks, err := s.ingestFile(ctx, upload)
			report.Files[i] = domain.FileResult{
				Filename: upload.Filename,
				Chunks:   chunks,
				Err:      err,
			}
			if err != nil {
				s.log.Warn("file ingestion failed", "file", upload.Filename, "error", err)
			} else {
				s.log.Info("file ingested", "file", upload.Filename, "chunks", chunks)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

// ingestFile runs the full pipeline for one upload and returns the
// number of chunks indexed.
func (s *IngestionService) ingestFile(ctx context.Context, upload driving.FileUpload) (int, error) {
	path, err := s.files.Save(ctx, upload.Filename, upload.Content)
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", upload.Filename, err)
	}

	pages, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", upload.Filename, err)
	}

	doc := domain.Document{Source: upload.Filename, Pages: pages}
	chunks, err := s.chunker.Chunk(doc)
	if err != nil {
		return 0, fmt.Errorf("chunk %s: %w", upload.Filename, err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%s: no text in document: %w", upload.Filename, domain.ErrExtraction)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	// One provider round-trip per document.
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %s: %w", upload.Filename, err)
	}
	if len(vectors) != len(texts) {
		return 0, fmt.Errorf("embed %s: got %d vectors for %d texts: %w",
			upload.Filename, len(vectors), len(texts), domain.ErrEmbedding)
	}

	entries := make([]domain.IndexedEntry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = domain.NewIndexedEntry(chunk, vectors[i])
	}

	// Single batched call: all of the document's chunks land or none do.
	if err := s.store.Upsert(ctx, entries); err != nil {
		return 0, fmt.Errorf("upsert %s: %w", upload.Filename, err)
	}

	return len(chunks), nil
}
