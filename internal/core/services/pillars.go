package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driving"
)

// Ensure PillarService implements the interface.
var _ driving.PillarService = (*PillarService)(nil)

// HourBranch returns the earthly branch index (0-11) of a local time.
// Branch 0 (子) spans 23:00-01:00 across midnight; branch i covers
// [2i-1, 2i+1) hours. Every time of day falls in exactly one window.
func HourBranch(t domain.TimeOfDay) int {
	h := t.DecimalHour()
	if h >= 23 || h < 1 {
		return 0
	}
	return int((h + 1) / 2)
}

// HourStem returns the heavenly stem index of the hour pillar.
// The first (子) hour of a day takes its stem from the day stem, so the
// ten stems cycle through every five days.
func HourStem(dayStem, hourBranch int) int {
	s := (dayStem*2 + hourBranch) % domain.StemCount
	if s < 0 {
		s += domain.StemCount
	}
	return s
}

// PillarService computes the four pillars of a birth record.
type PillarService struct {
	calendar driven.CalendarConverter
	now      func() time.Time
}

// NewPillarService creates a new pillar service backed by a calendar converter.
func NewPillarService(calendar driven.CalendarConverter) *PillarService {
	return &PillarService{
		calendar: calendar,
		now:      time.Now,
	}
}

// SetClock overrides the clock used to bound the birth year.
func (s *PillarService) SetClock(now func() time.Time) {
	s.now = now
}

// Compute validates the record and returns its pillars.
// Nothing is computed for an invalid record.
func (s *PillarService) Compute(_ context.Context, birth domain.BirthRecord) (*domain.PillarResult, error) {
	if err := birth.Validate(s.now().Year()); err != nil {
		return nil, err
	}

	date := domain.SolarDate{Year: birth.Year, Month: birth.Month, Day: birth.Day}
	if birth.Calendar == domain.CalendarLunar {
		solar, err := s.calendar.LunarToSolar(birth.Year, birth.Month, birth.Day)
		if err != nil {
			return nil, conversionError(birth, err)
		}
		date = solar
	}

	civil := time.Date(date.Year, time.Month(date.Month), date.Day, birth.Hour, birth.Minute, 0, 0, time.UTC)
	local := TrueSolarTime(civil, birth.Longitude)
	tod := domain.TimeOfDay{Hour: local.Hour(), Minute: local.Minute(), Second: local.Second()}

	pillars, err := s.calendar.SolarToPillars(date)
	if err != nil {
		return nil, fmt.Errorf("pillars for %s: %w", date, err)
	}

	branch := HourBranch(tod)
	return &domain.PillarResult{
		Year:         pillars.Year,
		Month:        pillars.Month,
		Day:          pillars.Day,
		Hour:         domain.NewPillar(HourStem(pillars.Day.Stem, branch), branch),
		SolarDate:    date,
		SolarDisplay: date.String(),
		LunarDisplay: pillars.LunarDisplay,
		LocalTime:    tod,
		DayCarry:     dayCarry(civil, local),
	}, nil
}

// conversionError ensures converter failures surface as *domain.CalendarConversionError.
func conversionError(birth domain.BirthRecord, err error) error {
	var ce *domain.CalendarConversionError
	if errors.As(err, &ce) {
		return err
	}
	return &domain.CalendarConversionError{
		Year:  birth.Year,
		Month: birth.Month,
		Day:   birth.Day,
		Err:   err,
	}
}
