package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.WritableCorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.WritableCorpusStore.
type CorpusStore struct {
	mu   sync.RWMutex
	docs []domain.Document
}

// NewCorpusStore creates a corpus holding docs in order.
func NewCorpusStore(docs ...domain.Document) *CorpusStore {
	return &CorpusStore{docs: slices.Clone(docs)}
}

// Load returns a copy of the documents in insertion order.
func (s *CorpusStore) Load(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.docs), nil
}

// Append adds documents after the existing ones.
func (s *CorpusStore) Append(_ context.Context, docs []domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	return nil
}

// Remove deletes the document at position.
func (s *CorpusStore) Remove(_ context.Context, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if position < 0 || position >= len(s.docs) {
		return fmt.Errorf("document %d: %w", position, domain.ErrNotFound)
	}
	s.docs = slices.Delete(s.docs, position, position+1)
	return nil
}

// Describe returns "memory".
func (s *CorpusStore) Describe() string {
	return "memory"
}
