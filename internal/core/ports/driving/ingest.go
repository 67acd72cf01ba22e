package driving

import (
	"context"
	"io"

	"github.com/aakifnehal/MedMind/internal/core/domain"
)

// FileUpload is one file handed to the ingestion pipeline.
type FileUpload struct {
	// Filename is the client-supplied name; it becomes the document's
	// source identifier.
	Filename string

	// Content streams the raw file bytes.
	Content io.Reader
}

// Ingestor runs the ingestion pipeline over a batch of uploads.
type Ingestor interface {
	// Ingest stages, extracts, chunks, embeds and upserts each file.
	// Per-file failures are recorded in the report and never abort
	// sibling files; the returned error is reserved for batch-level
	// failures such as context cancellation.
	Ingest(ctx context.Context, uploads []FileUpload) (*domain.IngestionReport, error)
}
