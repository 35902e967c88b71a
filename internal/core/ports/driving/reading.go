package driving

import (
	"context"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// ReadingService prepares a complete reading for external interpretation.
type ReadingService interface {
	// Analyse computes pillars, composes knowledge and renders the analysis prompt.
	Analyse(ctx context.Context, birth domain.BirthRecord) (*domain.Reading, error)
}
