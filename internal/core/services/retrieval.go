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

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// DefaultTopK is the number of passages retrieved per question.
const DefaultTopK = 3

// RetrievalService embeds a question and finds the nearest indexed
// passages in the vector store.
type RetrievalService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	log      *logger.Logger
}

// NewRetrievalService creates a retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, store driven.VectorStore, log *logger.Logger) *RetrievalService {
	return &RetrievalService{embedder: embedder, store: store, log: log}
}

// Retrieve returns up to topK passages ranked best similarity first.
// Matches whose metadata lacks non-empty text are dropped so a
// malformed index entry cannot crash synthesis. An empty result is a
// valid outcome, not an error.
func (s *RetrievalService) Retrieve(ctx context.Context, question string, topK int) ([]domain.RetrievedPassage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("empty question: %w", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.store.Query(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	s.log.Debug("vector query complete", "matches", len(matches), "top_k", topK)

	passages := make([]domain.RetrievedPassage, 0, len(matches))
	for _, match := range matches {
		text, _ := match.Metadata[domain.MetaText].(string)
		if text == "" {
			s.log.Warn("dropping match without text metadata", "id", match.ID)
			continue
		}
		source, _ := match.Metadata[domain.MetaSource].(string)
		passages = append(passages, domain.RetrievedPassage{
			Text:   text,
			Source: source,
			Score:  match.Score,
		})
	}
	return passages, nil
}
