package driving

import (
	"context"

	"github.com/aakifnehal/MedMind/internal/core/domain"
)

// Retriever finds the passages most similar to a question.
type Retriever interface {
	// Retrieve embeds the question and returns up to topK passages,
	// best similarity first. topK <= 0 selects the configured default.
	// An empty result is a valid, non-error outcome.
	Retrieve(ctx context.Context, question string, topK int) ([]domain.RetrievedPassage, error)
}

// Answerer answers a question grounded in the indexed documents.
type Answerer interface {
	// Ask retrieves context for the question and synthesises a grounded
	// answer. Failures before retrieval (embedding, vector store)
	// propagate as errors; generation failures after successful
	// retrieval degrade to a canned answer instead.
	Ask(ctx context.Context, question string) (domain.Answer, error)
}
