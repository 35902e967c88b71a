package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrCalendarConversion", ErrCalendarConversion},
		{"ErrIndexUnavailable", ErrIndexUnavailable},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "year", Value: 1899, Reason: "must be between 1900 and 2026"}

	assert.Equal(t, "invalid year: 1899 (must be between 1900 and 2026)", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrCalendarConversion))

	wrapped := fmt.Errorf("compute pillars: %w", err)
	var target *ValidationError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "year", target.Field)
	assert.Equal(t, 1899, target.Value)
}

func TestValidationError_NoReason(t *testing.T) {
	err := &ValidationError{Field: "month", Value: 13}
	assert.Equal(t, "invalid month: 13", err.Error())
}

func TestCalendarConversionError(t *testing.T) {
	cause := errors.New("wrong lunar year 2023 month 13")
	err := &CalendarConversionError{Year: 2023, Month: 13, Day: 1, Err: cause}

	assert.Equal(t, "convert lunar date 2023-13-01: wrong lunar year 2023 month 13", err.Error())
	assert.True(t, errors.Is(err, ErrCalendarConversion))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestCalendarConversionError_NoCause(t *testing.T) {
	err := &CalendarConversionError{Year: 2001, Month: 2, Day: 30}
	assert.Equal(t, "convert lunar date 2001-02-30", err.Error())
	assert.True(t, errors.Is(err, ErrCalendarConversion))
}
