package mcp

import (
	"github.com/custodia-labs/ghs/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search runs code searches.
	Search driving.SearchService

	// History exposes previously submitted queries. Optional.
	History driving.HistoryService

	// Settings supplies display options such as tab width. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
