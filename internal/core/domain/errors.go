package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCalendarConversion indicates a lunar date has no solar equivalent.
	ErrCalendarConversion = errors.New("calendar conversion failed")

	// ErrIndexUnavailable indicates no knowledge corpus has been loaded.
	// Retrieval and knowledge composition are disabled until one is.
	ErrIndexUnavailable = errors.New("knowledge index unavailable")

	// ErrUnsupportedFormat indicates a corpus file in an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ValidationError reports a BirthRecord field outside its accepted range.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	// Field is the offending field name (e.g. "year", "longitude").
	Field string

	// Value is the rejected value.
	Value any

	// Reason describes the accepted range.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s: %v (%s)", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// CalendarConversionError reports a lunar date the calendar collaborator
// could not map onto the solar calendar.
// It matches ErrCalendarConversion with errors.Is and unwraps to the cause.
type CalendarConversionError struct {
	Year  int
	Month int
	Day   int

	// Err is the underlying converter failure, if any.
	Err error
}

// Error implements the error interface.
func (e *CalendarConversionError) Error() string {
	msg := fmt.Sprintf("convert lunar date %04d-%02d-%02d", e.Year, e.Month, e.Day)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrCalendarConversion.
func (e *CalendarConversionError) Is(target error) bool {
	return target == ErrCalendarConversion
}

// Unwrap returns the underlying converter failure.
func (e *CalendarConversionError) Unwrap() error {
	return e.Err
}
