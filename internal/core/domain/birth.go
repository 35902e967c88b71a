package domain

import (
	"fmt"
	"math"
)

// CalendarSystem identifies the calendar a birth date is expressed in.
type CalendarSystem string

// Supported calendar systems.
const (
	// CalendarSolar is the Gregorian calendar.
	CalendarSolar CalendarSystem = "solar"

	// CalendarLunar is the Chinese lunisolar calendar.
	CalendarLunar CalendarSystem = "lunar"
)

// IsValid returns true if the calendar system is recognised.
func (c CalendarSystem) IsValid() bool {
	return c == CalendarSolar || c == CalendarLunar
}

// String returns the string representation.
func (c CalendarSystem) String() string {
	return string(c)
}

// MinBirthYear is the earliest accepted birth year.
const MinBirthYear = 1900

// BirthRecord is the input to a pillar computation.
// It is constructed once per request and passed by value.
type BirthRecord struct {
	// Calendar is the calendar Year/Month/Day are expressed in.
	Calendar CalendarSystem `json:"calendar"`

	Year  int `json:"year"`
	Month int `json:"month"`

	// Day is only range checked (1-31). Whether the date exists in
	// the given calendar is left to the calendar converter.
	Day int `json:"day"`

	// Hour and Minute are the civil time of day at the reference meridian.
	Hour   int `json:"hour"`
	Minute int `json:"minute"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Gender is free form and only used when composing a reading.
	Gender string `json:"gender,omitempty"`
}

// Validate checks every field range, reporting the first offending field.
// currentYear bounds the birth year from above.
func (b BirthRecord) Validate(currentYear int) error {
	switch {
	case !b.Calendar.IsValid():
		return &ValidationError{Field: "calendar", Value: b.Calendar, Reason: "must be solar or lunar"}
	case b.Year < MinBirthYear || b.Year > currentYear:
		return &ValidationError{
			Field:  "year",
			Value:  b.Year,
			Reason: fmt.Sprintf("must be between %d and %d", MinBirthYear, currentYear),
		}
	case b.Month < 1 || b.Month > 12:
		return &ValidationError{Field: "month", Value: b.Month, Reason: "must be between 1 and 12"}
	case b.Day < 1 || b.Day > 31:
		return &ValidationError{Field: "day", Value: b.Day, Reason: "must be between 1 and 31"}
	case b.Hour < 0 || b.Hour > 23:
		return &ValidationError{Field: "hour", Value: b.Hour, Reason: "must be between 0 and 23"}
	case b.Minute < 0 || b.Minute > 59:
		return &ValidationError{Field: "minute", Value: b.Minute, Reason: "must be between 0 and 59"}
	case outside(b.Latitude, -90, 90):
		return &ValidationError{Field: "latitude", Value: b.Latitude, Reason: "must be between -90 and 90"}
	case outside(b.Longitude, -180, 180):
		return &ValidationError{Field: "longitude", Value: b.Longitude, Reason: "must be between -180 and 180"}
	}
	return nil
}

// outside reports whether v is NaN or falls outside [lo, hi].
func outside(v, lo, hi float64) bool {
	return math.IsNaN(v) || v < lo || v > hi
}
