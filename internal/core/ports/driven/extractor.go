package driven

import (
	"context"

	"github.com/aakifnehal/MedMind/internal/core/domain"
)

// TextExtractor pulls per-page text out of a stored document file.
type TextExtractor interface {
	// Extract reads the file at path and returns its pages in order.
	// A file that cannot be parsed, or that yields no pages, fails
	// with domain.ErrExtraction.
	Extract(ctx context.Context, path string) ([]domain.Page, error)
}
