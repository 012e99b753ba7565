package mcp

import (
	"github.com/storyloom-labs/lorebase/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Grounding retrieves book passages for a query.
	Grounding driving.GroundingService

	// Library manages books and characters.
	Library driving.LibraryService

	// Indexing rebuilds book indexes.
	Indexing driving.IndexingService

	// Owner is the owner ID used for mutating operations. The MCP
	// server serves a single local user.
	Owner string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Grounding == nil {
		return ErrMissingGroundingService
	}
	// Library and Indexing are optional; the matching tools and
	// resources degrade gracefully without them.
	return nil
}
