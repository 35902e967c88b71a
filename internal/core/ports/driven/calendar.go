package driven

import "github.com/custodia-labs/ganzhi/internal/core/domain"

// CalendarConverter wraps a calendrical library.
// The astronomical work lives behind this port; the core only does
// stem-branch arithmetic on top of it.
type CalendarConverter interface {
	// LunarToSolar maps a lunar date onto the Gregorian calendar.
	// Returns a *domain.CalendarConversionError for dates that do not exist.
	LunarToSolar(year, month, day int) (domain.SolarDate, error)

	// SolarToPillars returns the year, month and day pillars of a Gregorian date.
	SolarToPillars(date domain.SolarDate) (SolarPillars, error)
}

// SolarPillars is the converter's view of a single Gregorian date.
type SolarPillars struct {
	Year  domain.Pillar
	Month domain.Pillar
	Day   domain.Pillar

	// LunarDisplay is the same date in the lunar calendar, in Chinese.
	LunarDisplay string
}
