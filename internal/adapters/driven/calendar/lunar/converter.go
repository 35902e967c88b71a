// Package lunar implements driven.CalendarConverter on top of the
// lunar-go Chinese calendar tables.
package lunar

import (
	"fmt"
	"sync"
	"time"

	"github.com/6tail/lunar-go/calendar"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.CalendarConverter = (*Converter)(nil)

// Converter converts between the lunar and solar calendars and reads the
// year, month and day pillars of a solar date.
// It is safe for concurrent use.
type Converter struct {
	// lunar-go caches the last computed year in a package variable.
	mu sync.Mutex
}

// New creates a new calendar converter.
func New() *Converter {
	return &Converter{}
}

// LunarToSolar returns the solar date of a non-leap lunar date.
func (c *Converter) LunarToSolar(year, month, day int) (solar domain.SolarDate, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The tables panic on dates they do not contain.
	defer func() {
		if r := recover(); r != nil {
			err = &domain.CalendarConversionError{
				Year: year, Month: month, Day: day,
				Err: fmt.Errorf("%v", r),
			}
		}
	}()

	l := calendar.NewLunarFromYmd(year, month, day)
	s := l.GetSolar()

	// Out of range days may be normalised into the next month instead of
	// rejected; only accept a date that maps back onto itself.
	back := s.GetLunar()
	if back.GetYear() != year || back.GetMonth() != month || back.GetDay() != day {
		return domain.SolarDate{}, &domain.CalendarConversionError{
			Year: year, Month: month, Day: day,
			Err: fmt.Errorf("lunar month %d of %d has no day %d", month, year, day),
		}
	}

	return domain.SolarDate{Year: s.GetYear(), Month: s.GetMonth(), Day: s.GetDay()}, nil
}

// SolarToPillars returns the year, month and day pillars of a solar date
// together with its lunar date in Chinese.
func (c *Converter) SolarToPillars(date domain.SolarDate) (pillars driven.SolarPillars, err error) {
	if !isCalendarDate(date) {
		return driven.SolarPillars{}, &domain.ValidationError{
			Field:  "day",
			Value:  date.Day,
			Reason: fmt.Sprintf("%04d-%02d has no such day", date.Year, date.Month),
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lunar tables for %s: %v", date, r)
		}
	}()

	l := calendar.NewSolarFromYmd(date.Year, date.Month, date.Day).GetLunar()

	labels := [3]string{l.GetYearInGanZhi(), l.GetMonthInGanZhi(), l.GetDayInGanZhi()}
	var parsed [3]domain.Pillar
	for i, label := range labels {
		p, perr := domain.ParsePillar(label)
		if perr != nil {
			return driven.SolarPillars{}, fmt.Errorf("pillar %q for %s: %w", label, date, perr)
		}
		parsed[i] = p
	}

	return driven.SolarPillars{
		Year:         parsed[0],
		Month:        parsed[1],
		Day:          parsed[2],
		LunarDisplay: l.GetYearInChinese() + "年" + l.GetMonthInChinese() + "月" + l.GetDayInChinese(),
	}, nil
}

// isCalendarDate reports whether date exists in the Gregorian calendar.
func isCalendarDate(date domain.SolarDate) bool {
	t := time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == date.Year && int(t.Month()) == date.Month && t.Day() == date.Day
}
