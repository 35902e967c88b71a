package services

import (
	"math"
	"time"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// ReferenceLongitude is the meridian civil birth times are expressed at (Beijing, 116.4074°E).
const ReferenceLongitude = domain.ReferenceLongitude

// Apparent solar time shifts four minutes per degree of longitude.
const minutesPerDegree = 4.0

// LongitudeOffset returns the true solar time correction for a longitude.
// It is linear in the distance from ReferenceLongitude; the equation of
// time and daylight saving are ignored.
func LongitudeOffset(longitude float64) time.Duration {
	minutes := (longitude - ReferenceLongitude) * minutesPerDegree
	return time.Duration(math.Round(minutes * float64(time.Minute)))
}

// TrueSolarTime corrects a civil time at the reference meridian to the
// true local time at longitude. The result may fall on the adjacent date.
func TrueSolarTime(civil time.Time, longitude float64) time.Time {
	return civil.Add(LongitudeOffset(longitude))
}

// dayCarry returns -1, 0 or +1 depending on which date local falls on
// relative to civil.
func dayCarry(civil, local time.Time) int {
	cy, cm, cd := civil.Date()
	ly, lm, ld := local.Date()
	switch {
	case cy == ly && cm == lm && cd == ld:
		return 0
	case local.Before(civil):
		return -1
	default:
		return 1
	}
}
