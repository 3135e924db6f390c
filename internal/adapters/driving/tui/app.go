package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/state"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/views/prompt"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/views/results"
	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for background commands.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	promptView  *prompt.View
	resultsView *results.View

	// history is shared with the prompt view, which moves its selection.
	history *domain.History

	// currentView tracks which screen is active.
	currentView messages.ViewType

	// configChanges fires when the config file is rewritten. May be nil.
	configChanges <-chan struct{}

	// initialQuery is submitted on start when non-empty.
	initialQuery string

	// tick counts render ticks for spinner animation.
	tick int

	// err is the fatal error that ended the session.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	if ports.Settings != nil {
		s = styles.NewStyles(styles.ThemeFromSettings(ports.Settings.Get().UI))
	}
	km := keymap.DefaultKeyMap()

	history := domain.NewHistory(nil)
	promptView := prompt.NewView(s, km)
	promptView.SetHistory(history)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		promptView:  promptView,
		resultsView: results.NewView(s, km, ports.Search, ports.ResultAction),
		history:     history,
		currentView: messages.ViewPrompt,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.resultsView.WithContext(ctx)
	return a
}

// WithConfigChanges makes the app reload its theme whenever ch fires.
func (a *App) WithConfigChanges(ch <-chan struct{}) *App {
	a.configChanges = ch
	return a
}

// WithQuery submits query as soon as the app starts.
func (a *App) WithQuery(query string) *App {
	a.initialQuery = query
	a.promptView.SetQuery(query)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("ghs - GitHub code search"),
		a.promptView.Init(),
		a.loadHistory(),
		tick(),
		a.waitForConfigChange(),
	}
	if a.initialQuery != "" {
		query := a.initialQuery
		cmds = append(cmds, func() tea.Msg {
			return messages.SearchRequested{Query: query}
		})
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keymap.ForceQuit) {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewPrompt:
			a.promptView, cmd = a.promptView.Update(msg)
		case messages.ViewResults:
			a.resultsView, cmd = a.resultsView.Update(msg)
		}
		return a, cmd

	case messages.Tick:
		a.tick++
		a.resultsView.SetTick(a.tick)
		return a, tick()

	case messages.SearchRequested:
		cmd, err := a.resultsView.Submit(msg.Query)
		if err != nil {
			logger.Warn("search %q not submitted: %v", msg.Query, err)
			return a, nil
		}
		a.currentView = messages.ViewResults
		return a, cmd

	case messages.SearchCompleted:
		if !a.resultsView.Search().Current(msg.RequestID) {
			logger.Debug("search %s: ignoring stale response", msg.RequestID)
			return a, nil
		}
		if msg.Err != nil {
			return a, a.fail(msg.Err)
		}
		if !a.resultsView.Complete(msg) {
			return a, nil
		}
		logger.Debug("search %s: %d matches", msg.RequestID, a.resultsView.Search().Results().Count())
		a.history.Add(a.resultsView.Search().Query().Text)
		return a, a.saveHistory()

	case messages.PageLoaded:
		if !a.resultsView.Search().Current(msg.RequestID) {
			logger.Debug("search %s: ignoring stale page", msg.RequestID)
			return a, nil
		}
		if msg.Err != nil {
			return a, a.fail(msg.Err)
		}
		a.resultsView.CompleteMore(msg)
		return a, nil

	case messages.HistoryLoaded:
		if msg.Err != nil {
			logger.Warn("load history: %v", msg.Err)
			return a, nil
		}
		a.mergeHistory(msg.Searches)
		return a, nil

	case messages.HistorySaved:
		if msg.Err != nil {
			logger.Debug("save history: %v", msg.Err)
		}
		return a, nil

	case messages.SettingsChanged:
		if msg.Err != nil {
			logger.Warn("reload settings: %v", msg.Err)
		} else {
			a.applyTheme(styles.ThemeFromSettings(msg.Settings.UI))
		}
		return a, a.waitForConfigChange()

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewPrompt {
			return a, a.promptView.Init()
		}
		return a, nil

	case messages.URLOpened, messages.URLCopied, messages.PagerClosed:
		a.resultsView, cmd = a.resultsView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages, such as cursor blinks, to the active view
	switch a.currentView {
	case messages.ViewPrompt:
		a.promptView, cmd = a.promptView.Update(msg)
	case messages.ViewResults:
		a.resultsView, cmd = a.resultsView.Update(msg)
	}
	return a, cmd
}

// fail records a fatal error and ends the program.
func (a *App) fail(err error) tea.Cmd {
	logger.Error("search failed: %v", err)
	a.err = err
	return tea.Quit
}

// mergeHistory installs stored history beneath queries already run in this
// session.
func (a *App) mergeHistory(stored []string) {
	h := domain.NewHistory(stored)
	for i := len(a.history.Searches) - 1; i >= 0; i-- {
		h.Add(a.history.Searches[i])
	}
	*a.history = *h
}

func (a *App) applyTheme(theme *styles.Theme) {
	a.styles = styles.NewStyles(theme)
	a.promptView.SetStyles(a.styles)
	a.resultsView.SetStyles(a.styles)
}

func tick() tea.Cmd {
	return tea.Tick(messages.TickInterval, func(t time.Time) tea.Msg {
		return messages.Tick{Time: t}
	})
}

func (a *App) loadHistory() tea.Cmd {
	svc := a.ports.History
	if svc == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		searches, err := svc.Load(ctx)
		return messages.HistoryLoaded{Searches: searches, Err: err}
	}
}

// saveHistory persists a snapshot of the history in the background.
func (a *App) saveHistory() tea.Cmd {
	svc := a.ports.History
	if svc == nil {
		return nil
	}
	ctx := a.ctx
	searches := a.history.Snapshot()
	return func() tea.Msg {
		return messages.HistorySaved{Err: svc.Save(ctx, searches)}
	}
}

// waitForConfigChange blocks until the config file changes, then re-reads
// settings. It returns nil once the change channel is closed.
func (a *App) waitForConfigChange() tea.Cmd {
	ch := a.configChanges
	svc := a.ports.Settings
	if ch == nil || svc == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		if err := svc.Reload(); err != nil {
			return messages.SettingsChanged{Err: err}
		}
		return messages.SettingsChanged{Settings: svc.Get()}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewResults:
		return a.resultsView.View()
	default:
		return a.promptView.View()
	}
}

// Run starts the TUI application and blocks until it exits.
// A fatal search error is returned wrapped in ErrSearchFailed.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if a.err != nil {
		return fmt.Errorf("%w: %w", ErrSearchFailed, a.err)
	}
	return nil
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Phase returns the phase of the search state machine.
func (a *App) Phase() state.Phase {
	return a.resultsView.Search().Phase()
}

// History returns the session history.
func (a *App) History() *domain.History {
	return a.history
}

// Err returns the fatal error that ended the session, if any.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.promptView.SetDimensions(width, height)
	a.resultsView.SetDimensions(width, height)
}
