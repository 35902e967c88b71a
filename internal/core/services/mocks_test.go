package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// --- Mock implementations ---

// fakeCalendar implements driven.CalendarConverter for testing.
// Day pillars are real (derived from the Julian day number); year and
// month pillars are fixed to those of 2000-01-01.
type fakeCalendar struct {
	lunar      map[domain.SolarDate]domain.SolarDate
	lunarErr   error
	pillarsErr error
	calls      int
}

func (f *fakeCalendar) LunarToSolar(year, month, day int) (domain.SolarDate, error) {
	if f.lunarErr != nil {
		return domain.SolarDate{}, f.lunarErr
	}
	solar, ok := f.lunar[domain.SolarDate{Year: year, Month: month, Day: day}]
	if !ok {
		return domain.SolarDate{}, &domain.CalendarConversionError{
			Year: year, Month: month, Day: day,
			Err: errors.New("no such lunar date"),
		}
	}
	return solar, nil
}

func (f *fakeCalendar) SolarToPillars(date domain.SolarDate) (driven.SolarPillars, error) {
	f.calls++
	if f.pillarsErr != nil {
		return driven.SolarPillars{}, f.pillarsErr
	}
	cycle := sexagenaryDay(date)
	return driven.SolarPillars{
		Year:         domain.NewPillar(5, 3), // 己卯
		Month:        domain.NewPillar(2, 0), // 丙子
		Day:          domain.NewPillar(cycle, cycle),
		LunarDisplay: "一九九九年冬月廿五",
	}, nil
}

// sexagenaryDay returns the 0-59 cycle position of a Gregorian date.
func sexagenaryDay(d domain.SolarDate) int {
	days := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Unix() / 86400
	jdn := days + 2440588
	return int((jdn + 49) % 60)
}

// memoryCorpus implements driven.WritableCorpusStore for testing.
type memoryCorpus struct {
	docs      []domain.Document
	loadErr   error
	appendErr error
}

func (m *memoryCorpus) Load(_ context.Context) ([]domain.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]domain.Document(nil), m.docs...), nil
}

func (m *memoryCorpus) Append(_ context.Context, docs []domain.Document) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.docs = append(m.docs, docs...)
	return nil
}

func (m *memoryCorpus) Remove(_ context.Context, position int) error {
	if position < 0 || position >= len(m.docs) {
		return domain.ErrNotFound
	}
	m.docs = append(m.docs[:position], m.docs[position+1:]...)
	return nil
}

func (m *memoryCorpus) Describe() string {
	return "memory"
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompt string
	err    error
}

func (m *mockPromptStore) Load(_ string) (string, error) {
	return m.prompt, m.err
}

func (m *mockPromptStore) Reload() {}

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	data   map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.data[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.data[key].(bool)
	return b
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return "mock.toml" }

// whitespace splits on spaces; tests write corpora with explicit word breaks.
var whitespace = driven.TokenizerFunc(strings.Fields)

// fixedClock returns a clock pinned to the given year.
func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)
	}
}
