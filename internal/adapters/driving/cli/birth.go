package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// birthArgs is the usage suffix of commands that take a birth moment.
const birthArgs = "<YYYY-MM-DD> [HH:MM]"

// birthFlags are the options shared by commands that take a birth moment.
type birthFlags struct {
	lunar     bool
	latitude  float64
	longitude float64
	gender    string
}

func (f *birthFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.lunar, "lunar", false, "the date is a lunar calendar date")
	cmd.Flags().Float64Var(&f.latitude, "lat", domain.ReferenceLatitude, "birthplace latitude (default from settings)")
	cmd.Flags().Float64Var(&f.longitude, "lon", domain.ReferenceLongitude, "birthplace longitude (default from settings)")
	cmd.Flags().StringVar(&f.gender, "gender", "", "gender, passed through to the analysis prompt")
}

// record builds a birth record from the positional arguments and flags.
// Coordinates not given on the command line come from the settings.
func (f *birthFlags) record(cmd *cobra.Command, args []string) (domain.BirthRecord, error) {
	year, month, day, err := parseDate(args[0])
	if err != nil {
		return domain.BirthRecord{}, err
	}

	hour, minute := 0, 0
	if len(args) > 1 {
		hour, minute, err = parseClock(args[1])
		if err != nil {
			return domain.BirthRecord{}, err
		}
	}

	calendar := domain.CalendarSolar
	if f.lunar {
		calendar = domain.CalendarLunar
	}

	location := currentSettings().Location
	if cmd.Flags().Changed("lat") {
		location.Latitude = f.latitude
	}
	if cmd.Flags().Changed("lon") {
		location.Longitude = f.longitude
	}

	return domain.BirthRecord{
		Calendar:  calendar,
		Year:      year,
		Month:     month,
		Day:       day,
		Hour:      hour,
		Minute:    minute,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Gender:    f.gender,
	}, nil
}

// parseDate parses YYYY-MM-DD without checking the day against the month,
// since lunar months have their own lengths.
func parseDate(s string) (year, month, day int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	fields, err := atoiAll(parts)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return fields[0], fields[1], fields[2], nil
}

// parseClock parses HH:MM.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: time %q must be HH:MM", domain.ErrInvalidInput, s)
	}
	fields, err := atoiAll(parts)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: time %q must be HH:MM", domain.ErrInvalidInput, s)
	}
	return fields[0], fields[1], nil
}

func atoiAll(parts []string) ([]int, error) {
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// pillarsView is the printable form of a pillar result.
type pillarsView struct {
	Year      string `json:"year"`
	Month     string `json:"month"`
	Day       string `json:"day"`
	Hour      string `json:"hour"`
	SolarDate string `json:"solar_date"`
	LunarDate string `json:"lunar_date"`
	LocalTime string `json:"local_time"`
	DayCarry  int    `json:"day_carry,omitempty"`
}

func newPillarsView(p *domain.PillarResult) pillarsView {
	return pillarsView{
		Year:      p.Year.String(),
		Month:     p.Month.String(),
		Day:       p.Day.String(),
		Hour:      p.Hour.String(),
		SolarDate: p.SolarDisplay,
		LunarDate: p.LunarDisplay,
		LocalTime: p.LocalTime.String(),
		DayCarry:  p.DayCarry,
	}
}

// printPillars writes the four pillars and the dates they were derived from.
func printPillars(cmd *cobra.Command, st *styles, p *domain.PillarResult) {
	v := newPillarsView(p)

	cmd.Println(st.Title("Four Pillars"))
	cmd.Printf("  %s  %s\n", st.Label("Year  年柱"), st.Pillar(v.Year))
	cmd.Printf("  %s  %s\n", st.Label("Month 月柱"), st.Pillar(v.Month))
	cmd.Printf("  %s  %s\n", st.Label("Day   日柱"), st.Pillar(v.Day))
	cmd.Printf("  %s  %s\n", st.Label("Hour  时柱"), st.Pillar(v.Hour))
	cmd.Println()
	cmd.Printf("  Solar date: %s\n", v.SolarDate)
	cmd.Printf("  Lunar date: %s\n", v.LunarDate)

	carry := ""
	switch {
	case v.DayCarry < 0:
		carry = st.Muted(" (previous day)")
	case v.DayCarry > 0:
		carry = st.Muted(" (next day)")
	}
	cmd.Printf("  Solar time: %s%s\n", v.LocalTime, carry)
}
