package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aakifnehal/MedMind/internal/core/domain"
	"github.com/aakifnehal/MedMind/internal/core/ports/driven"
	"github.com/aakifnehal/MedMind/internal/core/ports/driving"
	"github.com/aakifnehal/MedMind/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.Answerer = (*AnswerService)(nil)

// Canned answers for the two degraded outcomes the client must be able
// to tell apart from a hard failure.
const (
	// NoContextAnswer is returned when retrieval found nothing; the
	// generative model is not invoked at all.
	NoContextAnswer = "I couldn't find any relevant information in the uploaded documents. " +
		"Please make sure documents are uploaded and processed correctly."

	// GenerationFailureAnswer is returned when the model call failed
	// after retrieval succeeded.
	GenerationFailureAnswer = "An error occurred while processing your question."
)

// AnswerService synthesises grounded answers from retrieved passages.
type AnswerService struct {
	retriever driving.Retriever
	model     driven.GenerativeModel
	log       *logger.Logger
	topK      int
}

// NewAnswerService creates an answer service. topK <= 0 selects
// DefaultTopK.
func NewAnswerService(retriever driving.Retriever, model driven.GenerativeModel, log *logger.Logger, topK int) *AnswerService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerService{retriever: retriever, model: model, log: log, topK: topK}
}

// Ask retrieves context for the question and synthesises an answer.
// Retrieval failures propagate; generation failures degrade to a
// canned answer because the user's information need was already
// partially met by retrieval.
func (s *AnswerService) Ask(ctx context.Context, question string) (domain.Answer, error) {
	passages, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve: %w", err)
	}
	return s.Synthesize(ctx, question, passages), nil
}

// Synthesize combines the question with the retrieved passages and
// invokes the generative model once. Empty passages short-circuit to
// the no-context answer without a model call.
func (s *AnswerService) Synthesize(ctx context.Context, question string, passages []domain.RetrievedPassage) domain.Answer {
	if len(passages) == 0 {
		s.log.Info("no passages retrieved, skipping generation", "question", question)
		return domain.Answer{Response: NoContextAnswer, Sources: []string{}}
	}

	sources := dedupeSources(passages)

	response, err := s.model.Generate(ctx, buildPrompt(question, passages))
	if err != nil {
		s.log.Error("generation failed", "error", err, "model", s.model.ModelName())
		return domain.Answer{Response: GenerationFailureAnswer, Sources: []string{}}
	}

	return domain.Answer{Response: strings.TrimSpace(response), Sources: sources}
}

// answerPrompt binds the user question to the retrieved context.
const answerPrompt = `You are MedMind, an assistant that answers questions about a user's medical documents.
Answer the question using only the context below. If the context does not contain the answer, say so plainly.
Do not invent facts that are not in the context.

Context:
%s

Question: %s

Answer:`

// buildPrompt concatenates the passages best-similarity-first into the
// grounded prompt.
func buildPrompt(question string, passages []domain.RetrievedPassage) string {
	var b strings.Builder
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", p.Source, p.Text)
	}
	return fmt.Sprintf(answerPrompt, b.String(), question)
}

// dedupeSources returns each passage source once, preserving retrieval
// order.
func dedupeSources(passages []domain.RetrievedPassage) []string {
	seen := make(map[string]struct{}, len(passages))
	sources := make([]string, 0, len(passages))
	for _, p := range passages {
		if p.Source == "" {
			continue
		}
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		sources = append(sources, p.Source)
	}
	return sources
}
