// Package pdf extracts per-page text from PDF files using the pure Go
// ledongthuc/pdf reader.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads PDFs from the staging directory.
type Extractor struct{}

// New creates a PDF text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the document's pages in order. A file that cannot be
// parsed, or whose pages carry no text at all, fails with
// domain.ErrExtraction so the caller can skip it without aborting the
// rest of the batch.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrExtraction, path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	if total == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", domain.ErrExtraction, path)
	}

	pages := make([]domain.Page, 0, total)
	hasText := false
	for num := 1; num <= total; num++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest of
			// the document.
			continue
		}
		if strings.TrimSpace(text) != "" {
			hasText = true
		}
		pages = append(pages, domain.Page{Number: num, Text: text})
	}

	if !hasText {
		return nil, fmt.Errorf("%w: %s yielded no text", domain.ErrExtraction, path)
	}
	return pages, nil
}
