// Package chunker provides a fixed-size text chunking processor with
// configurable overlap and boundary-aware breaking.
package chunker

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default chunk window size in bytes.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default overlap between chunks in bytes.
const DefaultChunkOverlap = 100

// Chunker splits extracted documents into overlapping fixed-size
// passages. Pages are split independently, so a chunk never spans a
// page boundary; chunk indices run continuously across the document.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk window size in bytes.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in bytes.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must stay below the chunk size or windows cannot advance.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits the document into passages. Empty documents and blank
// pages yield zero chunks, not an error.
func (c *Chunker) Chunk(doc domain.Document) ([]domain.Chunk, error) {
	stem := sourceStem(doc.Source)

	var chunks []domain.Chunk
	index := 0
	for _, page := range doc.Pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		for _, text := range c.split(page.Text) {
			chunks = append(chunks, domain.Chunk{
				ID:     fmt.Sprintf("%s-%d", stem, index),
				Source: doc.Source,
				Index:  index,
				Page:   page.Number,
				Text:   text,
			})
			index++
		}
	}
	return chunks, nil
}

// split cuts one page's text into windows of at most chunkSize bytes.
// Each window after the first starts overlap bytes before the previous
// window's end, so the suffix of one chunk equals the prefix of the
// next. Boundary adjustment only ever shrinks a window, which preserves
// that invariant. Cut points and restarts are snapped to rune starts so
// multibyte text never yields invalid UTF-8 chunks.
func (c *Chunker) split(text string) []string {
	var out []string
	n := len(text)
	start := 0

	for start < n {
		end := start + c.chunkSize
		if end >= n {
			out = append(out, text[start:])
			break
		}
		for end > start && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == start {
			// The window is smaller than a single rune; cut hard.
			end = start + c.chunkSize
		}
		end = c.breakpoint(text, start, end)
		out = append(out, text[start:end])

		next := end - c.overlap
		for next > start && !utf8.RuneStart(text[next]) {
			next--
		}
		if next <= start {
			next = end
		}
		start = next
	}
	return out
}

// breakpoint moves the window end back to the nearest paragraph,
// sentence or word boundary. The search floor guarantees the next
// window still advances past the current start.
func (c *Chunker) breakpoint(text string, start, end int) int {
	lo := start + c.chunkSize*4/5
	if floor := start + c.overlap + 1; lo < floor {
		lo = floor
	}
	if lo >= end {
		return end
	}

	window := text[lo:end]
	if i := strings.LastIndex(window, "\n\n"); i >= 0 {
		return lo + i + 2
	}
	if i := lastSentenceEnd(window); i > 0 {
		return lo + i
	}
	if i := strings.LastIndexByte(window, ' '); i >= 0 {
		return lo + i + 1
	}
	return end
}

// lastSentenceEnd returns the offset just past the last sentence
// terminator in s, or -1 when there is none.
func lastSentenceEnd(s string) int {
	best := -1
	for _, sep := range []string{". ", "! ", "? ", ".\n", "!\n", "?\n"} {
		if i := strings.LastIndex(s, sep); i >= 0 && i+len(sep) > best {
			best = i + len(sep)
		}
	}
	return best
}

// sourceStem strips the extension from a filename for id derivation.
func sourceStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
