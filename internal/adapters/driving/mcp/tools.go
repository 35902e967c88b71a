package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

// BirthInput is the birth moment shared by the pillar tools.
type BirthInput struct {
	Calendar  string   `json:"calendar,omitempty" jsonschema:"calendar of the date: solar (default) or lunar"`
	Year      int      `json:"year" jsonschema:"birth year, 1900 or later"`
	Month     int      `json:"month" jsonschema:"birth month, 1-12"`
	Day       int      `json:"day" jsonschema:"birth day of month, 1-31"`
	Hour      int      `json:"hour" jsonschema:"civil hour (Beijing time), 0-23"`
	Minute    int      `json:"minute,omitempty" jsonschema:"civil minute, 0-59"`
	Latitude  *float64 `json:"latitude,omitempty" jsonschema:"birthplace latitude in degrees, -90 to 90"`
	Longitude *float64 `json:"longitude,omitempty" jsonschema:"birthplace longitude in degrees east, -180 to 180"`
	Gender    string   `json:"gender,omitempty" jsonschema:"optional, passed through to the analysis prompt"`
}

// record converts the input into a birth record, filling omitted fields
// from defaults.
func (in BirthInput) record(defaults domain.LocationSettings) domain.BirthRecord {
	calendar := domain.CalendarSystem(in.Calendar)
	if in.Calendar == "" {
		calendar = domain.CalendarSolar
	}
	lat, lon := defaults.Latitude, defaults.Longitude
	if in.Latitude != nil {
		lat = *in.Latitude
	}
	if in.Longitude != nil {
		lon = *in.Longitude
	}
	return domain.BirthRecord{
		Calendar:  calendar,
		Year:      in.Year,
		Month:     in.Month,
		Day:       in.Day,
		Hour:      in.Hour,
		Minute:    in.Minute,
		Latitude:  lat,
		Longitude: lon,
		Gender:    in.Gender,
	}
}

// PillarsOutput is the output schema for the compute_pillars tool.
type PillarsOutput struct {
	Year      string `json:"year"`
	Month     string `json:"month"`
	Day       string `json:"day"`
	Hour      string `json:"hour"`
	SolarDate string `json:"solar_date"`
	LunarDate string `json:"lunar_date"`
	LocalTime string `json:"local_time"`
	DayCarry  int    `json:"day_carry"`
}

func newPillarsOutput(p *domain.PillarResult) PillarsOutput {
	return PillarsOutput{
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

// SearchInput is the input schema for the search_knowledge tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"space separated terms, e.g. 五行 运势"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_knowledge tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single ranked document.
type SearchResultOutput struct {
	DocumentID int    `json:"document_id"`
	Source     string `json:"source"`
	Category   string `json:"category"`
	Score      int    `json:"score"`
	Content    string `json:"content"`
}

// KnowledgeOutput is the output schema for the compose_knowledge tool.
type KnowledgeOutput struct {
	Pillars   PillarsOutput `json:"pillars"`
	Knowledge string        `json:"knowledge"`
}

// AnalyseOutput is the output schema for the analyse tool.
type AnalyseOutput struct {
	ID        string        `json:"id"`
	Pillars   PillarsOutput `json:"pillars"`
	Knowledge string        `json:"knowledge"`
	Prompt    string        `json:"prompt"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_pillars",
		Description: "Compute the year, month, day and hour pillars (四柱八字) of a birth moment",
	}, s.handleComputePillars)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Rank knowledge documents by how many query terms they contain",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compose_knowledge",
		Description: "Compute the pillars of a birth moment and gather the most relevant knowledge documents",
	}, s.handleComposeKnowledge)

	if s.ports.Reading != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "analyse",
			Description: "Prepare a full reading: pillars, knowledge and the analysis prompt to answer",
		}, s.handleAnalyse)
	}
}

func (s *Server) handleComputePillars(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BirthInput,
) (*mcp.CallToolResult, PillarsOutput, error) {
	result, err := s.ports.Pillars.Compute(ctx, input.record(s.ports.Location))
	if err != nil {
		return nil, PillarsOutput{}, err
	}
	return nil, newPillarsOutput(result), nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	results, err := s.ports.Knowledge.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].Document.ID,
			Source:     results[i].Document.Source,
			Category:   results[i].Document.Category,
			Score:      results[i].Score,
			Content:    results[i].Document.Content,
		}
	}

	return nil, output, nil
}

func (s *Server) handleComposeKnowledge(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BirthInput,
) (*mcp.CallToolResult, KnowledgeOutput, error) {
	result, err := s.ports.Pillars.Compute(ctx, input.record(s.ports.Location))
	if err != nil {
		return nil, KnowledgeOutput{}, err
	}

	knowledge, err := s.ports.Knowledge.Compose(ctx, *result)
	if err != nil {
		return nil, KnowledgeOutput{}, err
	}

	return nil, KnowledgeOutput{
		Pillars:   newPillarsOutput(result),
		Knowledge: knowledge,
	}, nil
}

func (s *Server) handleAnalyse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BirthInput,
) (*mcp.CallToolResult, AnalyseOutput, error) {
	reading, err := s.ports.Reading.Analyse(ctx, input.record(s.ports.Location))
	if err != nil {
		return nil, AnalyseOutput{}, err
	}

	return nil, AnalyseOutput{
		ID:        reading.ID,
		Pillars:   newPillarsOutput(&reading.Pillars),
		Knowledge: reading.Knowledge,
		Prompt:    reading.Prompt,
	}, nil
}
