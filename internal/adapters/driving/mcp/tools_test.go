package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

func ptr[T any](v T) *T { return &v }

func TestBirthInput_record(t *testing.T) {
	defaults := domain.LocationSettings{Latitude: 39.9042, Longitude: 116.4074}

	t.Run("omitted fields use defaults", func(t *testing.T) {
		birth := BirthInput{Year: 2000, Month: 1, Day: 1, Hour: 12}.record(defaults)

		assert.Equal(t, domain.CalendarSolar, birth.Calendar)
		assert.Equal(t, 39.9042, birth.Latitude)
		assert.Equal(t, 116.4074, birth.Longitude)
	})

	t.Run("explicit values win", func(t *testing.T) {
		birth := BirthInput{
			Calendar:  "lunar",
			Year:      1999,
			Month:     11,
			Day:       25,
			Hour:      8,
			Minute:    30,
			Latitude:  ptr(43.8),
			Longitude: ptr(0.0),
			Gender:    "女",
		}.record(defaults)

		assert.Equal(t, domain.BirthRecord{
			Calendar:  domain.CalendarLunar,
			Year:      1999,
			Month:     11,
			Day:       25,
			Hour:      8,
			Minute:    30,
			Latitude:  43.8,
			Longitude: 0,
			Gender:    "女",
		}, birth)
	})

	t.Run("unknown calendar is passed through for validation", func(t *testing.T) {
		birth := BirthInput{Calendar: "julian"}.record(defaults)
		assert.Equal(t, domain.CalendarSystem("julian"), birth.Calendar)
	})
}

func TestServer_handleComputePillars(t *testing.T) {
	ctx := context.Background()

	t.Run("returns pillar labels", func(t *testing.T) {
		ports := validPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleComputePillars(ctx, nil, BirthInput{Year: 2000, Month: 1, Day: 1, Hour: 12})

		require.NoError(t, err)
		assert.Equal(t, "己卯", output.Year)
		assert.Equal(t, "丙子", output.Month)
		assert.Equal(t, "戊午", output.Day)
		assert.Equal(t, "戊午", output.Hour)
		assert.Equal(t, "2000年1月1日", output.SolarDate)
		assert.Equal(t, "一九九九年冬月廿五", output.LunarDate)
		assert.Equal(t, "11:59:58", output.LocalTime)
		assert.Equal(t, 0, output.DayCarry)

		births := ports.Pillars.(*mockPillarService).births
		require.Len(t, births, 1)
		assert.Equal(t, domain.ReferenceLongitude, births[0].Longitude)
	})

	t.Run("returns validation error", func(t *testing.T) {
		ports := validPorts()
		ports.Pillars = &mockPillarService{err: &domain.ValidationError{Field: "month", Value: 13}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleComputePillars(ctx, nil, BirthInput{Year: 2000, Month: 13, Day: 1})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		knowledge := &mockKnowledgeService{
			results: []domain.ScoredResult{
				{
					Document: domain.IndexedDocument{
						ID: 2,
						Document: domain.Document{
							Content:  "分析命理需要综合考虑",
							Source:   "命理分析方法",
							Category: "分析技巧",
						},
					},
					Score: 3,
				},
			},
		}
		ports := validPorts()
		ports.Knowledge = knowledge
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "五行 运势", Limit: 3})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, 2, output.Results[0].DocumentID)
		assert.Equal(t, "命理分析方法", output.Results[0].Source)
		assert.Equal(t, "分析技巧", output.Results[0].Category)
		assert.Equal(t, 3, output.Results[0].Score)
		assert.Equal(t, "分析命理需要综合考虑", output.Results[0].Content)
		assert.Equal(t, "五行 运势", knowledge.lastQuery)
		assert.Equal(t, 3, knowledge.lastLimit)
	})

	t.Run("default limit is 10", func(t *testing.T) {
		knowledge := &mockKnowledgeService{}
		ports := validPorts()
		ports.Knowledge = knowledge
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "五行"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Empty(t, output.Results)
		assert.Equal(t, domain.DefaultSearchLimit, knowledge.lastLimit)
	})

	t.Run("returns error when index is unavailable", func(t *testing.T) {
		ports := validPorts()
		ports.Knowledge = &mockKnowledgeService{err: domain.ErrIndexUnavailable}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "五行"})

		assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
	})
}

func TestServer_handleComposeKnowledge(t *testing.T) {
	ctx := context.Background()

	t.Run("composes knowledge for computed pillars", func(t *testing.T) {
		knowledge := &mockKnowledgeService{knowledge: "来源：五行理论\n分类：基础知识\n相关度：2\n内容：五行"}
		ports := validPorts()
		ports.Knowledge = knowledge
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleComposeKnowledge(ctx, nil, BirthInput{Year: 2000, Month: 1, Day: 1, Hour: 12})

		require.NoError(t, err)
		assert.Equal(t, knowledge.knowledge, output.Knowledge)
		assert.Equal(t, "戊午", output.Pillars.Day)
		require.Len(t, knowledge.composedOf, 1)
		assert.Equal(t, *samplePillars(), knowledge.composedOf[0])
	})

	t.Run("pillar error skips composition", func(t *testing.T) {
		knowledge := &mockKnowledgeService{}
		ports := validPorts()
		ports.Pillars = &mockPillarService{err: errors.New("conversion failed")}
		ports.Knowledge = knowledge
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleComposeKnowledge(ctx, nil, BirthInput{Year: 2000, Month: 1, Day: 1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "conversion failed")
		assert.Empty(t, knowledge.composedOf)
	})

	t.Run("knowledge error is returned", func(t *testing.T) {
		ports := validPorts()
		ports.Knowledge = &mockKnowledgeService{err: domain.ErrIndexUnavailable}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleComposeKnowledge(ctx, nil, BirthInput{Year: 2000, Month: 1, Day: 1})

		assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
	})
}

func TestServer_handleAnalyse(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the prepared reading", func(t *testing.T) {
		ports := validPorts()
		ports.Reading = &mockReadingService{reading: &domain.Reading{
			ID:        "reading-1",
			Pillars:   *samplePillars(),
			Knowledge: "知识",
			Prompt:    "年柱：己卯",
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleAnalyse(ctx, nil, BirthInput{Year: 2000, Month: 1, Day: 1, Hour: 12})

		require.NoError(t, err)
		assert.Equal(t, "reading-1", output.ID)
		assert.Equal(t, "己卯", output.Pillars.Year)
		assert.Equal(t, "知识", output.Knowledge)
		assert.Equal(t, "年柱：己卯", output.Prompt)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		ports := validPorts()
		ports.Reading = &mockReadingService{err: errors.New("compute pillars: boom")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAnalyse(ctx, nil, BirthInput{Year: 2000, Month: 1, Day: 1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}
