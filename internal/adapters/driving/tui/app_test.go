package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/state"
	"github.com/custodia-labs/ghs/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Search:  &MockSearchService{},
		History: &MockHistoryService{},
	}
}

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(80, 24)
	return app
}

func typeQuery(app *App, query string) tea.Cmd {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(query)})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

// submit types query at the prompt and returns the fetch result message.
func submit(t *testing.T, app *App, query string) tea.Msg {
	t.Helper()
	cmd := typeQuery(app, query)
	require.NotNil(t, cmd)
	req, ok := cmd().(messages.SearchRequested)
	require.True(t, ok)

	_, fetch := app.Update(req)
	require.NotNil(t, fetch)
	return fetch()
}

func matchPage(paths ...string) *domain.SearchPage {
	items := make([]domain.Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, domain.Item{
			Path:        p,
			TextMatches: []domain.TextMatch{{Fragment: "match in " + p}},
		})
	}
	return &domain.SearchPage{Results: domain.CodeResults{Items: items}}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewPrompt, app.CurrentView())
	assert.Equal(t, state.PhaseIdle, app.Phase())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingSearchService)
	assert.Nil(t, app)
}

func TestNewApp_ThemeFromSettings(t *testing.T) {
	settings := &MockSettingsService{Settings: domain.AppSettings{UI: domain.UISettings{TabWidth: 8}}}
	ports := newTestPorts()
	ports.Settings = settings

	app, err := NewApp(ports)

	require.NoError(t, err)
	assert.Equal(t, 8, app.styles.Theme().TabWidth)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_WithQuery(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	app.WithQuery("repo:acme/widgets")

	assert.Equal(t, "repo:acme/widgets", app.promptView.Query())
	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Search History")
}

func TestApp_ForceQuit(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app.Update(messages.ViewChanged{View: messages.ViewResults})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Tick(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(messages.Tick{})

	assert.NotNil(t, cmd)
	assert.Equal(t, 1, app.tick)
}

func TestApp_SearchFlow(t *testing.T) {
	search := &MockSearchService{
		SearchFunc: func(_ context.Context, q domain.Query) (*domain.SearchPage, error) {
			return matchPage("a.go", "b.go"), nil
		},
	}
	history := &MockHistoryService{}
	app := newTestApp(t, &Ports{Search: search, History: history})

	msg := submit(t, app, "needle")

	assert.Equal(t, messages.ViewResults, app.CurrentView())
	assert.Equal(t, state.PhaseLoading, app.Phase())

	_, save := app.Update(msg)

	assert.Equal(t, state.PhaseLoaded, app.Phase())
	assert.Equal(t, []string{"needle"}, app.History().Searches)
	require.NotNil(t, save)
	assert.Equal(t, messages.HistorySaved{}, save())
	assert.Equal(t, [][]string{{"needle"}}, history.Saved)
	assert.Contains(t, app.View(), "match in a.go")
}

func TestApp_SearchFlow_StaleIgnored(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	_ = submit(t, app, "needle")

	_, cmd := app.Update(messages.SearchCompleted{RequestID: "other", Page: matchPage("a.go")})

	assert.Nil(t, cmd)
	assert.Equal(t, state.PhaseLoading, app.Phase())
	assert.Empty(t, app.History().Searches)
}

func TestApp_SearchFlow_FatalError(t *testing.T) {
	boom := errors.New("connection refused")
	search := &MockSearchService{
		SearchFunc: func(_ context.Context, q domain.Query) (*domain.SearchPage, error) {
			return nil, boom
		},
	}
	app := newTestApp(t, &Ports{Search: search})

	msg := submit(t, app, "needle")
	_, cmd := app.Update(msg)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, app.Err(), boom)
}

func TestApp_Pagination_FatalError(t *testing.T) {
	first := matchPage("a.go")
	first.Pagination = &domain.Pagination{Next: "https://api.github.com/search/code?q=x&page=2"}
	boom := errors.New("rate limited")
	calls := 0
	search := &MockSearchService{
		SearchFunc: func(_ context.Context, q domain.Query) (*domain.SearchPage, error) {
			calls++
			if calls == 1 {
				return first, nil
			}
			return nil, boom
		},
	}
	app := newTestApp(t, &Ports{Search: search})
	app.Update(submit(t, app, "needle"))

	_, fetch := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	require.NotNil(t, fetch)
	assert.Equal(t, state.PhaseLoadingMore, app.Phase())

	_, cmd := app.Update(fetch())

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, app.Err(), boom)
}

func TestApp_Pagination_Merges(t *testing.T) {
	first := matchPage("a.go")
	first.Pagination = &domain.Pagination{Next: "https://api.github.com/search/code?q=x&page=2"}
	calls := 0
	search := &MockSearchService{
		SearchFunc: func(_ context.Context, q domain.Query) (*domain.SearchPage, error) {
			calls++
			if calls == 1 {
				return first, nil
			}
			return matchPage("b.go"), nil
		},
	}
	app := newTestApp(t, &Ports{Search: search})
	app.Update(submit(t, app, "needle"))

	_, fetch := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, fetch)
	app.Update(fetch())

	assert.Equal(t, state.PhaseLoaded, app.Phase())
	assert.Equal(t, 2, app.resultsView.Search().Results().Count())
	assert.NoError(t, app.Err())
}

func TestApp_SubmitWhileLoadingMore(t *testing.T) {
	first := matchPage("a.go")
	first.Pagination = &domain.Pagination{Next: "https://api.github.com/search/code?q=x&page=2"}
	search := &MockSearchService{
		SearchFunc: func(_ context.Context, q domain.Query) (*domain.SearchPage, error) {
			return first, nil
		},
	}
	app := newTestApp(t, &Ports{Search: search})
	app.Update(submit(t, app, "needle"))
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, state.PhaseLoadingMore, app.Phase())
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app.Update(messages.ViewChanged{View: messages.ViewPrompt})

	_, cmd := app.Update(messages.SearchRequested{Query: "other"})

	assert.Nil(t, cmd)
	assert.Equal(t, state.PhaseLoadingMore, app.Phase())
	assert.Equal(t, messages.ViewPrompt, app.CurrentView())
}

func TestApp_BackToPrompt(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app.Update(submit(t, app, "needle"))

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewPrompt, app.CurrentView())
}

func TestApp_HistoryLoaded(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app.History().Add("session")

	app.Update(messages.HistoryLoaded{Searches: []string{"stored", "session", "older"}})

	assert.Equal(t, []string{"session", "stored", "older"}, app.History().Searches)
	assert.Same(t, app.History(), app.promptView.History())
}

func TestApp_HistoryLoaded_Error(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app.History().Add("session")

	app.Update(messages.HistoryLoaded{Err: errors.New("corrupt")})

	assert.Equal(t, []string{"session"}, app.History().Searches)
}

func TestApp_LoadHistory(t *testing.T) {
	history := &MockHistoryService{
		LoadFunc: func(_ context.Context) ([]string, error) {
			return []string{"a", "b"}, nil
		},
	}
	app := newTestApp(t, &Ports{Search: &MockSearchService{}, History: history})

	msg := app.loadHistory()()

	assert.Equal(t, messages.HistoryLoaded{Searches: []string{"a", "b"}}, msg)
}

func TestApp_NoHistoryService(t *testing.T) {
	app := newTestApp(t, &Ports{Search: &MockSearchService{}})

	assert.Nil(t, app.loadHistory())
	assert.Nil(t, app.saveHistory())
}

func TestApp_HistorySavedError(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(messages.HistorySaved{Err: errors.New("read-only")})

	assert.Nil(t, cmd)
	assert.NoError(t, app.Err())
}

func TestApp_ConfigChanges(t *testing.T) {
	settings := &MockSettingsService{Settings: domain.AppSettings{UI: domain.UISettings{TabWidth: 2}}}
	ports := newTestPorts()
	ports.Settings = settings
	ch := make(chan struct{}, 1)
	app := newTestApp(t, ports).WithConfigChanges(ch)

	ch <- struct{}{}
	msg := app.waitForConfigChange()()

	changed, ok := msg.(messages.SettingsChanged)
	require.True(t, ok)
	assert.Equal(t, 1, settings.Reloads)

	_, next := app.Update(changed)
	assert.NotNil(t, next, "keeps waiting for further changes")
	assert.Equal(t, 2, app.styles.Theme().TabWidth)

	close(ch)
	assert.Nil(t, app.waitForConfigChange()())
}

func TestApp_ConfigChanges_ReloadError(t *testing.T) {
	settings := &MockSettingsService{ReloadErr: errors.New("bad toml")}
	ports := newTestPorts()
	ports.Settings = settings
	ch := make(chan struct{}, 1)
	app := newTestApp(t, ports).WithConfigChanges(ch)
	before := app.styles

	ch <- struct{}{}
	msg := app.waitForConfigChange()().(messages.SettingsChanged)
	app.Update(msg)

	assert.Error(t, msg.Err)
	assert.Same(t, before, app.styles)
}

func TestApp_NoConfigChanges(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	assert.Nil(t, app.waitForConfigChange())
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
