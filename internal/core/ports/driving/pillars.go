package driving

import (
	"context"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// PillarService computes the sexagenary encoding of a birth moment.
type PillarService interface {
	// Compute validates the record and returns its four pillars.
	// Fails with *domain.ValidationError or *domain.CalendarConversionError.
	Compute(ctx context.Context, birth domain.BirthRecord) (*domain.PillarResult, error)
}
