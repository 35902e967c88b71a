package driving

import (
	"context"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// CorpusService manages the persisted knowledge corpus.
type CorpusService interface {
	// Import appends documents to the corpus and reloads the index.
	// Returns the number of documents imported.
	Import(ctx context.Context, docs []domain.Document) (int, error)

	// Delete removes the document with index ID id and reloads the index.
	// Returns the removed document.
	Delete(ctx context.Context, id int) (*domain.Document, error)
}
