package domain

import (
	"fmt"
	"strings"
)

// FileResult records the outcome of ingesting one uploaded file.
type FileResult struct {
	// Filename is the uploaded file's name.
	Filename string

	// Chunks is the number of chunks indexed for the file.
	Chunks int

	// Err is non-nil when the file failed to ingest.
	Err error
}

// Succeeded reports whether the file was ingested.
func (r FileResult) Succeeded() bool {
	return r.Err == nil
}

// IngestionReport aggregates per-file outcomes for one upload batch.
// A failed file never aborts its siblings, so a report can mix
// successes and failures.
type IngestionReport struct {
	Files []FileResult
}

// SucceededCount returns the number of files that ingested cleanly.
func (r *IngestionReport) SucceededCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the results for files that could not be ingested.
func (r *IngestionReport) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if !f.Succeeded() {
			failed = append(failed, f)
		}
	}
	return failed
}

// AllFailed reports whether no file in the batch ingested.
func (r *IngestionReport) AllFailed() bool {
	return len(r.Files) > 0 && r.SucceededCount() == 0
}

// Summary renders a one-line human-readable batch outcome.
func (r *IngestionReport) Summary() string {
	if len(r.Files) == 0 {
		return "no files uploaded"
	}
	failed := r.Failed()
	if len(failed) == 0 {
		return "Files uploaded successfully"
	}
	names := make([]string, len(failed))
	for i, f := range failed {
		names[i] = f.Filename
	}
	return fmt.Sprintf("%d of %d files uploaded successfully; failed: %s",
		r.SucceededCount(), len(r.Files), strings.Join(names, ", "))
}
