package mcp

import (
	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Index extracts fields from records.
	Index driving.IndexService

	// Rules describes the active extraction rules.
	Rules driving.RuleService

	// Records reads back stored records.
	Records driving.RecordService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Index == nil {
		return ErrMissingIndexService
	}
	// Rules and Records are optional
	return nil
}
