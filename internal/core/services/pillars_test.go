package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

func TestHourBranch(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         int
	}{
		{23, 0, 0},
		{0, 0, 0},
		{23, 59, 0},
		{0, 59, 0},
		{1, 0, 1},
		{2, 59, 1},
		{3, 0, 2},
		{5, 30, 3},
		{7, 0, 4},
		{9, 15, 5},
		{11, 0, 6},
		{12, 0, 6},
		{12, 59, 6},
		{13, 0, 7},
		{15, 0, 8},
		{17, 45, 9},
		{19, 0, 10},
		{21, 0, 11},
		{22, 59, 11},
	}

	for _, tt := range tests {
		got := HourBranch(domain.TimeOfDay{Hour: tt.hour, Minute: tt.minute})
		assert.Equal(t, tt.want, got, "%02d:%02d", tt.hour, tt.minute)
	}
}

func TestHourBranch_EveryMinuteInRange(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			b := HourBranch(domain.TimeOfDay{Hour: h, Minute: m})
			require.GreaterOrEqual(t, b, 0)
			require.Less(t, b, domain.BranchCount)
		}
	}
}

func TestHourStem_Formula(t *testing.T) {
	for s := 0; s < domain.StemCount; s++ {
		for b := 0; b < domain.BranchCount; b++ {
			assert.Equal(t, (2*s+b)%10, HourStem(s, b), "stem=%d branch=%d", s, b)
		}
	}
}

func TestHourStem_FiveDayCycle(t *testing.T) {
	// The zi hour of five consecutive days starting at 甲 runs 甲 丙 戊 庚 壬,
	// and the 60 hour pillars of those days are the whole sexagenary cycle.
	ziStems := make([]int, 0, 5)
	seen := make(map[domain.Pillar]struct{})
	for day := 0; day < 5; day++ {
		ziStems = append(ziStems, HourStem(day, 0))
		for b := 0; b < domain.BranchCount; b++ {
			seen[domain.NewPillar(HourStem(day, b), b)] = struct{}{}
		}
	}

	assert.Equal(t, []int{0, 2, 4, 6, 8}, ziStems)
	assert.Len(t, seen, 60)
	assert.Equal(t, HourStem(0, 0), HourStem(5, 0))
}

func TestPillarService_Compute_NoonAtBeijing(t *testing.T) {
	cal := &fakeCalendar{}
	svc := NewPillarService(cal)
	svc.SetClock(fixedClock(2026))

	result, err := svc.Compute(context.Background(), domain.BirthRecord{
		Calendar:  domain.CalendarSolar,
		Year:      2000,
		Month:     1,
		Day:       1,
		Hour:      12,
		Minute:    0,
		Latitude:  39.9,
		Longitude: 116.4,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, result.LocalTime.Hour)
	assert.Equal(t, 59, result.LocalTime.Minute)
	assert.Equal(t, 6, result.Hour.Branch)
	assert.Equal(t, "戊午", result.Day.String())
	assert.Equal(t, "戊午", result.Hour.String())
	assert.Equal(t, "己卯", result.Year.String())
	assert.Equal(t, "丙子", result.Month.String())
	assert.Equal(t, domain.SolarDate{Year: 2000, Month: 1, Day: 1}, result.SolarDate)
	assert.Equal(t, "一九九九年冬月廿五", result.LunarDisplay)
	assert.Equal(t, "2000年1月1日", result.SolarDisplay)
	assert.Equal(t, 0, result.DayCarry)

	for _, p := range result.Pillars() {
		assert.NotEmpty(t, p.StemName())
		assert.NotEmpty(t, p.BranchName())
	}
}

func TestPillarService_Compute_UsesCorrectedTime(t *testing.T) {
	svc := NewPillarService(&fakeCalendar{})
	svc.SetClock(fixedClock(2026))

	// 13:10 civil at Urumqi (87.6E) is about 11:15 true local time.
	result, err := svc.Compute(context.Background(), domain.BirthRecord{
		Calendar:  domain.CalendarSolar,
		Year:      2000,
		Month:     1,
		Day:       1,
		Hour:      13,
		Minute:    10,
		Longitude: 87.6,
	})

	require.NoError(t, err)
	assert.Equal(t, 11, result.LocalTime.Hour)
	assert.Equal(t, 6, result.Hour.Branch)
}

func TestPillarService_Compute_ZiHourAcrossMidnight(t *testing.T) {
	svc := NewPillarService(&fakeCalendar{})
	svc.SetClock(fixedClock(2026))

	result, err := svc.Compute(context.Background(), domain.BirthRecord{
		Calendar:  domain.CalendarSolar,
		Year:      2000,
		Month:     3,
		Day:       1,
		Hour:      0,
		Minute:    10,
		Longitude: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, 23, result.LocalTime.Hour)
	assert.Equal(t, -1, result.DayCarry)
	assert.Equal(t, 0, result.Hour.Branch)
	// The day pillar stays on the civil date.
	assert.Equal(t, domain.SolarDate{Year: 2000, Month: 3, Day: 1}, result.SolarDate)
	assert.Equal(t, HourStem(result.Day.Stem, 0), result.Hour.Stem)
}

func TestPillarService_Compute_HourStemFollowsDayStem(t *testing.T) {
	svc := NewPillarService(&fakeCalendar{})
	svc.SetClock(fixedClock(2026))

	for day := 1; day <= 10; day++ {
		result, err := svc.Compute(context.Background(), domain.BirthRecord{
			Calendar:  domain.CalendarSolar,
			Year:      2000,
			Month:     1,
			Day:       day,
			Hour:      0,
			Minute:    30,
			Longitude: ReferenceLongitude,
		})
		require.NoError(t, err)
		assert.Equal(t, (result.Day.Stem*2)%10, result.Hour.Stem, "day %d", day)
	}
}

func TestPillarService_Compute_Lunar(t *testing.T) {
	cal := &fakeCalendar{
		lunar: map[domain.SolarDate]domain.SolarDate{
			{Year: 1999, Month: 11, Day: 25}: {Year: 2000, Month: 1, Day: 1},
		},
	}
	svc := NewPillarService(cal)
	svc.SetClock(fixedClock(2026))

	result, err := svc.Compute(context.Background(), domain.BirthRecord{
		Calendar:  domain.CalendarLunar,
		Year:      1999,
		Month:     11,
		Day:       25,
		Hour:      12,
		Longitude: ReferenceLongitude,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SolarDate{Year: 2000, Month: 1, Day: 1}, result.SolarDate)
	assert.Equal(t, "戊午", result.Day.String())
}

func TestPillarService_Compute_LunarConversionFails(t *testing.T) {
	cal := &fakeCalendar{}
	svc := NewPillarService(cal)
	svc.SetClock(fixedClock(2026))

	_, err := svc.Compute(context.Background(), domain.BirthRecord{
		Calendar: domain.CalendarLunar,
		Year:     2023,
		Month:    12,
		Day:      31,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCalendarConversion))
	var ce *domain.CalendarConversionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 31, ce.Day)
	assert.Equal(t, 0, cal.calls, "no pillars computed after a failed conversion")
}

func TestPillarService_Compute_WrapsPlainConverterErrors(t *testing.T) {
	cause := errors.New("calendar table missing")
	svc := NewPillarService(&fakeCalendar{lunarErr: cause})
	svc.SetClock(fixedClock(2026))

	_, err := svc.Compute(context.Background(), domain.BirthRecord{
		Calendar: domain.CalendarLunar,
		Year:     2001,
		Month:    4,
		Day:      1,
	})

	var ce *domain.CalendarConversionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2001, ce.Year)
	assert.True(t, errors.Is(err, cause))
}

func TestPillarService_Compute_ValidationError(t *testing.T) {
	cal := &fakeCalendar{}
	svc := NewPillarService(cal)
	svc.SetClock(fixedClock(2026))

	tests := []struct {
		name  string
		birth domain.BirthRecord
		field string
	}{
		{"year before 1900", domain.BirthRecord{Calendar: domain.CalendarSolar, Year: 1899, Month: 1, Day: 1}, "year"},
		{"year in the future", domain.BirthRecord{Calendar: domain.CalendarSolar, Year: 2027, Month: 1, Day: 1}, "year"},
		{"month", domain.BirthRecord{Calendar: domain.CalendarSolar, Year: 2000, Month: 13, Day: 1}, "month"},
		{"latitude", domain.BirthRecord{Calendar: domain.CalendarSolar, Year: 2000, Month: 1, Day: 1, Latitude: -91}, "latitude"},
		{"longitude", domain.BirthRecord{Calendar: domain.CalendarSolar, Year: 2000, Month: 1, Day: 1, Longitude: 181}, "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Compute(context.Background(), tt.birth)
			assert.Nil(t, result)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	assert.Equal(t, 0, cal.calls)
}

func TestPillarService_Compute_PillarsError(t *testing.T) {
	cause := &domain.ValidationError{Field: "day", Value: 30, Reason: "2001-02 has 28 days"}
	svc := NewPillarService(&fakeCalendar{pillarsErr: cause})
	svc.SetClock(fixedClock(2026))

	result, err := svc.Compute(context.Background(), domain.BirthRecord{
		Calendar: domain.CalendarSolar,
		Year:     2001,
		Month:    2,
		Day:      30,
	})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "2001年2月30日")
}
