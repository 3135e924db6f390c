// Package tui provides an interactive terminal user interface for ghs.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ghs/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search fetches result pages.
	Search driving.SearchService

	// History loads and persists submitted queries. Optional.
	History driving.HistoryService

	// ResultAction opens and copies result URLs. Optional.
	ResultAction driving.ResultActionService

	// Settings supplies UI settings and reloads them. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	search driving.SearchService,
	history driving.HistoryService,
	resultAction driving.ResultActionService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Search:       search,
		History:      history,
		ResultAction: resultAction,
		Settings:     settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
