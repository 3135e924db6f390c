// Package prompt provides the query input screen with history recall.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ghs/internal/core/domain"
)

// View is the prompt screen: a query input above the search history.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	input   *input.Field
	help    help.Model
	history *domain.History

	width  int
	height int
}

// NewView creates a new prompt view with empty history.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:  s,
		keymap:  km,
		input:   input.NewField(s, "Search", "repo:owner/name language:go ..."),
		help:    help.New(),
		history: domain.NewHistory(nil),
		width:   80,
		height:  24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the prompt view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keymap.HistoryNext):
		v.history.SelectNext()
		v.recall()
		return v, nil

	case key.Matches(msg, v.keymap.HistoryPrev):
		v.history.SelectPrev()
		v.recall()
		return v, nil

	case key.Matches(msg, v.keymap.Submit):
		query := strings.TrimSpace(v.input.Value())
		if query == "" {
			return v, nil
		}
		v.history.ClearSelection()
		return v, func() tea.Msg {
			return messages.SearchRequested{Query: query}
		}
	}

	v.history.ClearSelection()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// recall copies the highlighted history entry into the input.
func (v *View) recall() {
	if q, ok := v.history.SelectedQuery(); ok {
		v.input.SetValue(q)
	}
}

// View renders the prompt view.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("GitHub code search"),
		"",
		v.input.View(),
		"",
		v.renderHistory(),
		"",
		lipgloss.PlaceHorizontal(v.width, lipgloss.Center, v.help.ShortHelpView(v.keymap.PromptHelp())),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// historyRows is the number of entries that fit in the history box.
func (v *View) historyRows() int {
	// title, blank, input (3), blank, box border (2) + box title, blank, help
	return max(v.height-11, 1)
}

func (v *View) renderHistory() string {
	var lines []string
	if len(v.history.Searches) == 0 {
		lines = append(lines, v.styles.Muted.Render("No search history yet"))
	} else {
		rows := v.historyRows()
		start := 0
		if v.history.Selected >= rows {
			start = v.history.Selected - rows + 1
		}
		end := min(start+rows, len(v.history.Searches))

		for i := start; i < end; i++ {
			entry := v.history.Searches[i]
			if i == v.history.Selected {
				lines = append(lines, v.styles.HistorySelected.Render(entry))
			} else {
				lines = append(lines, v.styles.Normal.Render(entry))
			}
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Search History"),
		strings.Join(lines, "\n"),
	)
	return v.styles.Border.Width(max(v.width-2, 10)).Render(content)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.help.Width = width
}

// SetStyles swaps the styles, e.g. after a theme reload.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	v.input.SetStyles(s)
}

// SetHistory replaces the history shown and navigated.
func (v *View) SetHistory(h *domain.History) {
	if h != nil {
		v.history = h
	}
}

// History returns the history being navigated.
func (v *View) History() *domain.History {
	return v.history
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery replaces the text in the input.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}
