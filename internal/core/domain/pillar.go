package domain

import (
	"fmt"
	"strings"
)

// Cycle lengths of the two sexagenary sets.
const (
	StemCount   = 10
	BranchCount = 12
)

// HeavenlyStems are the ten stems (天干) in cycle order.
var HeavenlyStems = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

// EarthlyBranches are the twelve branches (地支) in cycle order.
var EarthlyBranches = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

// Pillar is a heavenly stem / earthly branch pair.
// Indices are always reduced modulo their cycle length.
type Pillar struct {
	Stem   int `json:"stem"`
	Branch int `json:"branch"`
}

// NewPillar creates a pillar, reducing both indices into range.
func NewPillar(stem, branch int) Pillar {
	return Pillar{
		Stem:   mod(stem, StemCount),
		Branch: mod(branch, BranchCount),
	}
}

// ParsePillar parses a two character label such as "甲子".
func ParsePillar(label string) (Pillar, error) {
	runes := []rune(strings.TrimSpace(label))
	if len(runes) != 2 {
		return Pillar{}, fmt.Errorf("%w: pillar %q must be two characters", ErrInvalidInput, label)
	}
	stem, ok := StemIndex(string(runes[0]))
	if !ok {
		return Pillar{}, fmt.Errorf("%w: unknown stem %q", ErrInvalidInput, string(runes[0]))
	}
	branch, ok := BranchIndex(string(runes[1]))
	if !ok {
		return Pillar{}, fmt.Errorf("%w: unknown branch %q", ErrInvalidInput, string(runes[1]))
	}
	return Pillar{Stem: stem, Branch: branch}, nil
}

// StemIndex returns the cycle position of a stem character.
func StemIndex(name string) (int, bool) {
	for i, s := range HeavenlyStems {
		if s == name {
			return i, true
		}
	}
	return 0, false
}

// BranchIndex returns the cycle position of a branch character.
func BranchIndex(name string) (int, bool) {
	for i, b := range EarthlyBranches {
		if b == name {
			return i, true
		}
	}
	return 0, false
}

// StemName returns the stem character.
func (p Pillar) StemName() string {
	return HeavenlyStems[mod(p.Stem, StemCount)]
}

// BranchName returns the branch character.
func (p Pillar) BranchName() string {
	return EarthlyBranches[mod(p.Branch, BranchCount)]
}

// String returns the two character label, e.g. "甲子".
func (p Pillar) String() string {
	return p.StemName() + p.BranchName()
}

// SolarDate is a Gregorian calendar date.
type SolarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String returns the date in the display form used by readings, e.g. "2000年1月1日".
func (d SolarDate) String() string {
	return fmt.Sprintf("%d年%d月%d日", d.Year, d.Month, d.Day)
}

// TimeOfDay is a local clock reading.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// DecimalHour returns the time as fractional hours since midnight.
func (t TimeOfDay) DecimalHour() float64 {
	return float64(t.Hour) + float64(t.Minute)/60 + float64(t.Second)/3600
}

// String returns the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// PillarResult is the sexagenary encoding of a birth moment.
type PillarResult struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`

	// Hour's stem is derived from Day's stem.
	Hour Pillar `json:"hour"`

	// SolarDate is the resolved Gregorian date the pillars were computed for.
	SolarDate SolarDate `json:"solar_date"`

	// SolarDisplay is SolarDate in Chinese, e.g. "2000年1月1日".
	SolarDisplay string `json:"solar_display"`

	// LunarDisplay is the lunar date in Chinese, e.g. "一九九九年冬月廿五".
	LunarDisplay string `json:"lunar_date"`

	// LocalTime is the longitude corrected true local time.
	LocalTime TimeOfDay `json:"local_time"`

	// DayCarry is -1 or +1 when the correction crossed midnight, else 0.
	DayCarry int `json:"day_carry,omitempty"`
}

// Pillars returns the four pillars in year, month, day, hour order.
func (r PillarResult) Pillars() [4]Pillar {
	return [4]Pillar{r.Year, r.Month, r.Day, r.Hour}
}

// String returns the eight characters, e.g. "己卯 丙子 戊午 戊午".
func (r PillarResult) String() string {
	return strings.Join([]string{r.Year.String(), r.Month.String(), r.Day.String(), r.Hour.String()}, " ")
}

// mod returns the non-negative remainder of a divided by n.
func mod(a, n int) int {
	return ((a % n) + n) % n
}
