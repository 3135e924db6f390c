// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"time"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// TickInterval is the render tick period, roughly 60 frames per second.
const TickInterval = 16 * time.Millisecond

// Tick advances animations.
type Tick struct {
	Time time.Time
}

// SearchCompleted carries the first page of a query back to the model.
type SearchCompleted struct {
	RequestID string
	Page      *domain.SearchPage
	Err       error
}

// PageLoaded carries a further page of the current query.
type PageLoaded struct {
	RequestID string
	Page      *domain.SearchPage
	Err       error
}

// HistoryLoaded carries the stored search history.
type HistoryLoaded struct {
	Searches []string
	Err      error
}

// HistorySaved signals a history write finished.
type HistorySaved struct {
	Err error
}

// SettingsChanged carries settings re-read after the config file changed.
type SettingsChanged struct {
	Settings domain.AppSettings
	Err      error
}

// PagerClosed signals the fragment pager exited.
type PagerClosed struct {
	Err error
}

// URLOpened signals an attempt to open a result in the browser.
type URLOpened struct {
	URL string
	Err error
}

// URLCopied signals an attempt to copy a result URL to the clipboard.
type URLCopied struct {
	URL string
	Err error
}

// ViewChanged is sent when navigating between screens.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which screen is currently active.
type ViewType int

const (
	// ViewPrompt is the query input and history screen.
	ViewPrompt ViewType = iota
	// ViewResults is the results browser.
	ViewResults
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPrompt:
		return "prompt"
	case ViewResults:
		return "results"
	default:
		return "unknown"
	}
}

// SearchRequested asks the app to start a query typed at the prompt.
type SearchRequested struct {
	Query string
}

// Quit signals the application should exit.
type Quit struct{}
