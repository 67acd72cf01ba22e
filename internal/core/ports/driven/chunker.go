package driven

import "github.com/aakifnehal/MedMind/internal/core/domain"

// Chunker splits an extracted document into overlapping passages.
// Implementations are pure functions of the document and their own
// configured parameters.
type Chunker interface {
	Chunk(doc domain.Document) ([]domain.Chunk, error)
}
