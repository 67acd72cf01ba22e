package driven

import (
	"context"
	"io"
)

// FileStore stages raw uploaded bytes on durable storage.
// Paths are filename-addressed; uploading the same name overwrites the
// previous copy (acceptable for a single-user tool).
type FileStore interface {
	// Save writes the content under filename and returns the stored
	// path for downstream extraction.
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}
