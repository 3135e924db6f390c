// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// Theme defines the colour palette and display constants for the TUI.
type Theme struct {
	// Accent colours titles and the prompt label.
	Accent lipgloss.Color

	// Match colours matched substrings in fragments.
	Match lipgloss.Color

	// Selected is the background of the highlighted history entry.
	Selected lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Border colours block rules and input borders.
	Border lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// SpinnerFrames animate loading indicators.
	SpinnerFrames []string

	// TabWidth is the number of spaces a tab in a fragment expands to.
	TabWidth int
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:        lipgloss.Color("#06B6D4"), // Cyan
		Match:         lipgloss.Color("11"),      // Bright yellow
		Selected:      lipgloss.Color("8"),       // Dark gray
		Muted:         lipgloss.Color("#6C7086"), // Medium gray
		Border:        lipgloss.Color("#45475A"), // Border gray
		Error:         lipgloss.Color("#F38BA8"), // Red
		SpinnerFrames: domain.DefaultSpinnerFrames(),
		TabWidth:      domain.DefaultTabWidth,
	}
}

// ThemeFromSettings builds a theme from UI settings. Colour slots missing
// from the settings keep their default.
func ThemeFromSettings(ui domain.UISettings) *Theme {
	t := DefaultTheme()
	if ui.TabWidth > 0 {
		t.TabWidth = ui.TabWidth
	}
	if len(ui.SpinnerFrames) > 0 {
		t.SpinnerFrames = append([]string(nil), ui.SpinnerFrames...)
	}

	slots := map[string]*lipgloss.Color{
		"accent":   &t.Accent,
		"match":    &t.Match,
		"selected": &t.Selected,
		"muted":    &t.Muted,
		"border":   &t.Border,
		"error":    &t.Error,
	}
	for name, colour := range ui.Colours {
		if dst, ok := slots[name]; ok && colour != "" {
			*dst = lipgloss.Color(colour)
		}
	}
	return t
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Match style for matched fragment text.
	Match lipgloss.Style

	// Selected style for the focused result block.
	Selected lipgloss.Style

	// SelectedMatch style for matched text inside the focused block.
	SelectedMatch lipgloss.Style

	// HistorySelected style for the recalled history entry.
	HistorySelected lipgloss.Style

	// Rule style for the separator above each result block.
	Rule lipgloss.Style

	// Filter style for the applied filter line.
	Filter lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),

		Normal: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Match: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Match),

		Selected: lipgloss.NewStyle().
			Reverse(true),

		SelectedMatch: lipgloss.NewStyle().
			Bold(true).
			Reverse(true).
			Foreground(theme.Match),

		HistorySelected: lipgloss.NewStyle().
			Bold(true).
			Background(theme.Selected),

		Rule: lipgloss.NewStyle().
			Foreground(theme.Border),

		Filter: lipgloss.NewStyle().
			Foreground(theme.Match),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Spinner returns the loading frame for a tick counter. The frame advances
// every third tick.
func (s *Styles) Spinner(tick int) string {
	frames := s.theme.SpinnerFrames
	if len(frames) == 0 {
		return ""
	}
	return frames[(max(tick, 0)/3)%len(frames)]
}
