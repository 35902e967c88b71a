package driving

import (
	"context"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// KnowledgeService retrieves reference text from the knowledge corpus.
type KnowledgeService interface {
	// Search ranks documents by query term overlap.
	Search(ctx context.Context, query string, limit int) ([]domain.ScoredResult, error)

	// Compose builds the knowledge text accompanying a pillar result.
	// An empty string means nothing matched.
	Compose(ctx context.Context, pillars domain.PillarResult) (string, error)

	// Documents returns the indexed documents in ID order.
	Documents(ctx context.Context) ([]domain.IndexedDocument, error)

	// Status reports whether an index is loaded and its size.
	Status(ctx context.Context) domain.IndexStatus

	// Reload rebuilds the index from the corpus store.
	Reload(ctx context.Context) error
}
