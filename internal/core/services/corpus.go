package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driving"
	"github.com/custodia-labs/ganzhi/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService edits a writable corpus and keeps the
// knowledge index in step with it.
type CorpusService struct {
	store     driven.WritableCorpusStore
	knowledge driving.KnowledgeService
}

// NewCorpusService creates a new corpus service.
// The knowledge service is optional; without it the index is not reloaded.
func NewCorpusService(store driven.WritableCorpusStore, knowledge driving.KnowledgeService) *CorpusService {
	return &CorpusService{
		store:     store,
		knowledge: knowledge,
	}
}

// Import validates and appends docs, then reloads the index.
// Documents with blank content are rejected before anything is written.
func (s *CorpusService) Import(ctx context.Context, docs []domain.Document) (int, error) {
	for i := range docs {
		if strings.TrimSpace(docs[i].Content) == "" {
			return 0, fmt.Errorf("%w: document %d has no content", domain.ErrInvalidInput, i)
		}
	}
	if len(docs) == 0 {
		return 0, nil
	}

	if err := s.store.Append(ctx, docs); err != nil {
		return 0, fmt.Errorf("append documents: %w", err)
	}
	logger.Info("Imported %d documents into %s", len(docs), s.store.Describe())

	if s.knowledge != nil {
		if err := s.knowledge.Reload(ctx); err != nil {
			return len(docs), fmt.Errorf("reload index: %w", err)
		}
	}

	return len(docs), nil
}

// Delete removes the document with index ID id, then reloads the index.
// IDs of the documents after it shift down by one.
func (s *CorpusService) Delete(ctx context.Context, id int) (*domain.Document, error) {
	docs, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	if id < 0 || id >= len(docs) {
		return nil, fmt.Errorf("document %d: %w", id, domain.ErrNotFound)
	}
	removed := docs[id]

	if err := s.store.Remove(ctx, id); err != nil {
		return nil, fmt.Errorf("remove document %d: %w", id, err)
	}
	logger.Info("Removed document %d (%s) from %s", id, removed.Source, s.store.Describe())

	if s.knowledge != nil {
		if err := s.knowledge.Reload(ctx); err != nil {
			return &removed, fmt.Errorf("reload index: %w", err)
		}
	}

	return &removed, nil
}
