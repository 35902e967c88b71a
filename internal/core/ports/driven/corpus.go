package driven

import (
	"context"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// CorpusStore supplies the knowledge corpus at load time.
// Documents are returned in insertion order, which fixes their index IDs.
type CorpusStore interface {
	// Load returns every document in insertion order.
	Load(ctx context.Context) ([]domain.Document, error)

	// Describe returns a short human-readable origin, e.g. a file path.
	Describe() string
}

// WritableCorpusStore is a CorpusStore that accepts new documents.
type WritableCorpusStore interface {
	CorpusStore

	// Append adds documents after the existing ones.
	Append(ctx context.Context, docs []domain.Document) error

	// Remove deletes the document at position in load order. Later
	// documents move up by one. Returns domain.ErrNotFound when position
	// is out of range.
	Remove(ctx context.Context, position int) error
}
