package mcp

import (
	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pillars computes the four pillars of a birth record.
	Pillars driving.PillarService

	// Knowledge searches and composes reference text.
	Knowledge driving.KnowledgeService

	// Reading prepares analysis readings. Optional; the analyse tool is
	// only registered when set.
	Reading driving.ReadingService

	// Location is used when a tool call omits coordinates.
	Location domain.LocationSettings
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Pillars == nil {
		return ErrMissingPillarService
	}
	if p.Knowledge == nil {
		return ErrMissingKnowledgeService
	}
	return nil
}
