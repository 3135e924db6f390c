package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ help.KeyMap = (*KeyMap)(nil)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"ForceQuit", km.ForceQuit, []string{"ctrl+c"}},
		{"Quit", km.Quit, []string{"esc", "ctrl+c"}},
		{"HistoryNext", km.HistoryNext, []string{"down", "ctrl+j"}},
		{"HistoryPrev", km.HistoryPrev, []string{"up", "ctrl+k"}},
		{"Submit", km.Submit, []string{"enter", "ctrl+l"}},
		{"Back", km.Back, []string{"esc"}},
		{"Filter", km.Filter, []string{"/"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"Open", km.Open, []string{"enter", "l"}},
		{"View", km.View, []string{"v"}},
		{"Copy", km.Copy, []string{"y"}},
		{"Apply", km.Apply, []string{"enter"}},
		{"Cancel", km.Cancel, []string{"esc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Key, "binding should have help key")
		})
	}
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.PromptHelp(), 4)
	assert.Len(t, km.ResultsHelp(), 7)
	assert.Len(t, km.FilterHelp(), 2)
	assert.Equal(t, km.ResultsHelp(), km.ShortHelp())

	full := km.FullHelp()
	assert.Len(t, full, 3)
	assert.Equal(t, km.PromptHelp(), full[0])
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("esc", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("/", km.Filter))
	assert.True(t, Matches("up", km.Up))
	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("l", km.Open))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("a", km.Filter))
	assert.False(t, Matches("down", km.Up))
}
