package domain

// Page is a single page of text extracted from an uploaded document.
type Page struct {
	// Number is the 1-based page number within the source file.
	Number int

	// Text is the raw extracted text of the page.
	Text string
}

// Document represents one uploaded file after text extraction.
// Documents are immutable once ingested; re-uploading a file with the
// same name overwrites its vectors rather than duplicating them.
type Document struct {
	// Source is the original filename, used as the document identifier.
	Source string

	// Pages holds the extracted per-page text in page order.
	Pages []Page
}

// Chunk is a searchable passage cut from a document.
type Chunk struct {
	// ID is derived from the source filename stem and the chunk index,
	// so re-ingesting the same file upserts onto the same keys.
	ID string

	// Source is the originating document's filename.
	Source string

	// Index is the zero-based position of the chunk within the document.
	Index int

	// Page is the 1-based page the chunk was drawn from.
	Page int

	// Text is the chunk content. Length is bounded by the configured
	// chunk size.
	Text string
}

// IndexedEntry is the persisted unit in the vector store.
// Metadata always carries the full chunk text so retrieval can rebuild
// passages without touching the original file.
type IndexedEntry struct {
	ID       string
	Vector   []float32
	Metadata map[string]any
}

// Metadata keys stored alongside every vector.
const (
	MetaText       = "text"
	MetaSource     = "source"
	MetaChunkIndex = "chunk_index"
	MetaPage       = "page"
)

// NewIndexedEntry builds the vector store entry for a chunk.
func NewIndexedEntry(chunk Chunk, vector []float32) IndexedEntry {
	return IndexedEntry{
		ID:     chunk.ID,
		Vector: vector,
		Metadata: map[string]any{
			MetaText:       chunk.Text,
			MetaSource:     chunk.Source,
			MetaChunkIndex: chunk.Index,
			MetaPage:       chunk.Page,
		},
	}
}

// RetrievedPassage is a chunk recovered from the vector store at query
// time, ranked by similarity. It is ephemeral: produced per query and
// consumed immediately by answer synthesis.
type RetrievedPassage struct {
	Text   string
	Source string
	Score  float64
}

// Answer is the synthesised response to a question.
type Answer struct {
	// Response is the generated answer text.
	Response string

	// Sources lists the originating filenames of the passages the
	// answer was grounded in, de-duplicated and in retrieval order.
	Sources []string
}
