// Package mcp provides an MCP (Model Context Protocol) server adapter for ganzhi.
// It lets AI assistants compute pillars, retrieve reference knowledge and
// prepare readings.
package mcp

import "errors"

var (
	// ErrMissingPillarService is returned when the pillar service is not provided.
	ErrMissingPillarService = errors.New("mcp: pillar service is required")

	// ErrMissingKnowledgeService is returned when the knowledge service is not provided.
	ErrMissingKnowledgeService = errors.New("mcp: knowledge service is required")
)
