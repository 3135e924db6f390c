// Package status provides the results footer for the TUI.
package status

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/state"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/styles"
)

// Bar renders the two-line footer below the results: keybinding hints with
// page information, then a line describing the filter or loading state.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	help        help.Model
	page        int
	lastPage    int
	loadingMore bool
	filterMode  state.FilterMode
	filterText  string
	message     string
	tick        int
	width       int
}

// NewBar creates a new footer.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShortSeparator = ", "

	return &Bar{
		styles: s,
		keymap: km,
		help:   h,
		width:  80,
	}
}

// View renders the footer.
func (s *Bar) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, s.renderHints(), s.renderState())
}

func (s *Bar) renderHints() string {
	var bindings []key.Binding
	if s.filterMode == state.FilterEditing {
		bindings = s.keymap.FilterHelp()
	} else {
		bindings = s.keymap.ResultsHelp()
	}

	s.help.Width = max(s.width-lipgloss.Width(s.pageInfo()), 0)
	return s.help.ShortHelpView(bindings) + s.styles.Muted.Render(s.pageInfo())
}

// pageInfo is " | Page N/M", " | Page N" when the last page is unknown, or
// empty before the first page has loaded.
func (s *Bar) pageInfo() string {
	switch {
	case s.page <= 0:
		return ""
	case s.lastPage > 0:
		return fmt.Sprintf(" | Page %d/%d", s.page, s.lastPage)
	default:
		return fmt.Sprintf(" | Page %d", s.page)
	}
}

func (s *Bar) renderState() string {
	switch {
	case s.filterMode == state.FilterEditing:
		return ""
	case s.filterMode == state.FilterApplied:
		return s.styles.Filter.Render(fmt.Sprintf("Filter: %s (Esc to clear)", s.filterText))
	case s.message != "":
		return s.styles.Muted.Render(s.message)
	case s.loadingMore:
		return s.styles.Normal.Render(s.styles.Spinner(s.tick) + " Loading more results...")
	default:
		return s.styles.Muted.Render("Esc to go back to search")
	}
}

// SetPage sets the current page and, when known, the last page.
func (s *Bar) SetPage(page, last int) {
	s.page = page
	s.lastPage = last
}

// SetLoadingMore toggles the loading indicator.
func (s *Bar) SetLoadingMore(loading bool) {
	s.loadingMore = loading
}

// SetFilter sets the filter mode and text shown.
func (s *Bar) SetFilter(mode state.FilterMode, text string) {
	s.filterMode = mode
	s.filterText = text
}

// SetMessage sets a transient message, e.g. the result of a copy.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetTick sets the animation counter used for the spinner.
func (s *Bar) SetTick(tick int) {
	s.tick = tick
}

// SetStyles swaps the styles, e.g. after a theme reload.
func (s *Bar) SetStyles(st *styles.Styles) {
	if st != nil {
		s.styles = st
	}
}

// SetWidth sets the footer width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Height returns the number of rows View produces.
func (s *Bar) Height() int {
	return 2
}

// Clear resets the footer to its default state.
func (s *Bar) Clear() {
	s.page = 0
	s.lastPage = 0
	s.loadingMore = false
	s.filterMode = state.FilterInactive
	s.filterText = ""
	s.message = ""
}
