package mcp

import (
	"context"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// mockPillarService implements driving.PillarService for testing.
type mockPillarService struct {
	result *domain.PillarResult
	err    error
	births []domain.BirthRecord
}

func (m *mockPillarService) Compute(_ context.Context, birth domain.BirthRecord) (*domain.PillarResult, error) {
	m.births = append(m.births, birth)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockKnowledgeService implements driving.KnowledgeService for testing.
type mockKnowledgeService struct {
	results    []domain.ScoredResult
	knowledge  string
	documents  []domain.IndexedDocument
	status     domain.IndexStatus
	err        error
	lastQuery  string
	lastLimit  int
	composedOf []domain.PillarResult
}

func (m *mockKnowledgeService) Search(_ context.Context, query string, limit int) ([]domain.ScoredResult, error) {
	m.lastQuery = query
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockKnowledgeService) Compose(_ context.Context, pillars domain.PillarResult) (string, error) {
	m.composedOf = append(m.composedOf, pillars)
	if m.err != nil {
		return "", m.err
	}
	return m.knowledge, nil
}

func (m *mockKnowledgeService) Documents(_ context.Context) ([]domain.IndexedDocument, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.documents, nil
}

func (m *mockKnowledgeService) Status(_ context.Context) domain.IndexStatus {
	return m.status
}

func (m *mockKnowledgeService) Reload(_ context.Context) error {
	return m.err
}

// mockReadingService implements driving.ReadingService for testing.
type mockReadingService struct {
	reading *domain.Reading
	err     error
}

func (m *mockReadingService) Analyse(_ context.Context, birth domain.BirthRecord) (*domain.Reading, error) {
	if m.err != nil {
		return nil, m.err
	}
	r := *m.reading
	r.Birth = birth
	return &r, nil
}

// samplePillars is 2000-01-01 12:00 at the reference meridian.
func samplePillars() *domain.PillarResult {
	return &domain.PillarResult{
		Year:         domain.NewPillar(5, 3),
		Month:        domain.NewPillar(2, 0),
		Day:          domain.NewPillar(4, 6),
		Hour:         domain.NewPillar(4, 6),
		SolarDate:    domain.SolarDate{Year: 2000, Month: 1, Day: 1},
		SolarDisplay: "2000年1月1日",
		LunarDisplay: "一九九九年冬月廿五",
		LocalTime:    domain.TimeOfDay{Hour: 11, Minute: 59, Second: 58},
	}
}

func validPorts() *Ports {
	return &Ports{
		Pillars:   &mockPillarService{result: samplePillars()},
		Knowledge: &mockKnowledgeService{},
		Location: domain.LocationSettings{
			Latitude:  domain.ReferenceLatitude,
			Longitude: domain.ReferenceLongitude,
		},
	}
}
