// Package results provides the results browser: a scrolled list of
// highlighted code fragments with filtering and pagination.
package results

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/state"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driving"
	"github.com/custodia-labs/ghs/internal/logger"
)

// View owns the search state machine and renders its results.
type View struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	search      *state.Search
	filter      *state.Filter
	filterInput *input.Field
	statusbar   *status.Bar

	searchService driving.SearchService
	actionService driving.ResultActionService
	pager         func(content string) error
	ctx           context.Context

	cache    layoutCache
	selected int
	scroll   int
	tick     int
	width    int
	height   int
}

// NewView creates a new results view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	actionService driving.ResultActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	filterInput := input.NewField(s, "Filter", "path, repository or code")
	filterInput.Blur()

	return &View{
		styles:        s,
		keymap:        km,
		search:        state.NewSearch(),
		filter:        state.NewFilter(),
		filterInput:   filterInput,
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		actionService: actionService,
		pager:         runPager,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Submit starts a new query and returns the command fetching its first page.
func (v *View) Submit(text string) (tea.Cmd, error) {
	q, id, err := v.search.Submit(text)
	if err != nil {
		return nil, err
	}
	logger.Debug("search %s: submit %q", id, q.Text)
	return v.fetch(q, id, false), nil
}

// fetch runs a query in the background. The first page reports as
// SearchCompleted and later pages as PageLoaded.
func (v *View) fetch(q domain.Query, id string, more bool) tea.Cmd {
	svc := v.searchService
	ctx := v.ctx
	return func() tea.Msg {
		var (
			page *domain.SearchPage
			err  = ErrNoSearchService
		)
		if svc != nil {
			page, err = svc.Search(ctx, q)
		}
		if more {
			return messages.PageLoaded{RequestID: id, Page: page, Err: err}
		}
		return messages.SearchCompleted{RequestID: id, Page: page, Err: err}
	}
}

// Complete applies a first page. It reports false for stale responses.
// The filter and selection are reset for the new results.
func (v *View) Complete(msg messages.SearchCompleted) bool {
	if msg.Err != nil || !v.search.Complete(msg.RequestID, msg.Page) {
		return false
	}
	v.filter.Reset()
	v.filterInput.Reset()
	v.filterInput.Blur()
	v.selected = 0
	v.scroll = 0
	v.statusbar.SetMessage("")
	return true
}

// CompleteMore appends a further page. It reports false for stale responses.
func (v *View) CompleteMore(msg messages.PageLoaded) bool {
	if msg.Err != nil {
		return false
	}
	return v.search.CompleteMore(msg.RequestID, msg.Page)
}

// Update handles messages for the results view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.URLOpened:
		if msg.Err != nil {
			v.statusbar.SetMessage("Open: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Opened " + msg.URL)
		}
		return v, nil

	case messages.URLCopied:
		if msg.Err != nil {
			v.statusbar.SetMessage("Copy: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Copied " + msg.URL)
		}
		return v, nil

	case messages.PagerClosed:
		if msg.Err != nil {
			v.statusbar.SetMessage("Pager: " + msg.Err.Error())
		}
		return v, nil
	}

	if v.filter.Mode() == state.FilterEditing {
		var cmd tea.Cmd
		v.filterInput, cmd = v.filterInput.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.filter.Mode() == state.FilterEditing {
		return v.handleFilterKey(msg)
	}

	v.statusbar.SetMessage("")

	switch {
	case key.Matches(msg, v.keymap.Back):
		if v.filter.Escape() {
			v.filterInput.Reset()
			v.selected = 0
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPrompt}
		}

	case key.Matches(msg, v.keymap.Filter):
		v.filter.Begin()
		v.filterInput.SetValue(v.filter.Input())
		return v, v.filterInput.Focus()
	}

	entries := v.Entries()
	n := len(entries)
	if n == 0 {
		return v, nil
	}
	v.selected = min(v.selected, n-1)
	current := entries[v.selected]

	switch {
	case key.Matches(msg, v.keymap.Down):
		v.selected = (v.selected + 1) % n
		if v.search.NeedsMore(v.selected, n) {
			if q, id, ok := v.search.BeginMore(); ok {
				logger.Debug("search %s: fetching page %d", id, q.Page)
				return v, v.fetch(q, id, true)
			}
		}
		return v, nil

	case key.Matches(msg, v.keymap.Up):
		v.selected = max(v.selected-1, 0)
		return v, nil

	case key.Matches(msg, v.keymap.Open):
		return v, v.openURL(current.Item.HTMLURL)

	case key.Matches(msg, v.keymap.Copy):
		return v, v.copyURL(current.Item.HTMLURL)

	case key.Matches(msg, v.keymap.View):
		return v, v.viewFragment(current)
	}

	return v, nil
}

// handleFilterKey processes keyboard input while the filter is edited.
func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Cancel):
		v.filter.Escape()
		v.filterInput.Blur()
		return v, nil

	case key.Matches(msg, v.keymap.Apply):
		v.filter.Commit()
		v.filterInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	if v.filter.SetInput(v.filterInput.Value()) {
		v.selected = 0
	}
	return v, cmd
}

func (v *View) openURL(url string) tea.Cmd {
	svc := v.actionService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.URLOpened{URL: url, Err: ErrNoActionService}
		}
		return messages.URLOpened{URL: url, Err: svc.OpenURL(ctx, url)}
	}
}

func (v *View) copyURL(url string) tea.Cmd {
	svc := v.actionService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.URLCopied{URL: url, Err: ErrNoActionService}
		}
		return messages.URLCopied{URL: url, Err: svc.CopyURL(ctx, url)}
	}
}

// Entries returns the navigable matches passing the filter.
func (v *View) Entries() []state.Entry {
	if !v.search.HasResults() {
		return nil
	}
	return state.Visible(v.search.Results(), v.filter)
}

// View renders the results view.
func (v *View) View() string {
	v.syncStatus()

	footer := v.statusbar.View()
	sections := []string{"", footer}
	if v.filter.Mode() == state.FilterEditing {
		sections = append(sections, v.filterInput.View())
	}

	frame := lipgloss.NewStyle().Margin(1, 2)
	width := max(v.width-frame.GetHorizontalMargins(), 0)
	height := max(v.height-frame.GetVerticalMargins()-lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, sections[1:]...)), 0)
	sections[0] = v.renderBody(width, height)

	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (v *View) syncStatus() {
	page, last := 0, 0
	if v.search.HasResults() {
		page = v.search.Page()
		if n, ok := v.search.Pagination().LastPage(); ok {
			last = n
		}
	}
	v.statusbar.SetPage(page, last)
	v.statusbar.SetLoadingMore(v.search.Phase() == state.PhaseLoadingMore)
	v.statusbar.SetFilter(v.filter.Mode(), v.filter.Input())
	v.statusbar.SetTick(v.tick)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filterInput.SetWidth(max(width-4, 0))
	v.statusbar.SetWidth(max(width-4, 0))
}

// SetStyles swaps the styles, e.g. after a theme reload.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	v.filterInput.SetStyles(s)
	v.statusbar.SetStyles(s)
}

// SetTick sets the animation counter used for spinners.
func (v *View) SetTick(tick int) {
	v.tick = tick
}

// Search returns the search state machine.
func (v *View) Search() *state.Search {
	return v.search
}

// Filter returns the results filter.
func (v *View) Filter() *state.Filter {
	return v.filter
}

// Selected returns the index of the selected entry.
func (v *View) Selected() int {
	return v.selected
}

// Scroll returns the first visible row of the results canvas.
func (v *View) Scroll() int {
	return v.scroll
}
