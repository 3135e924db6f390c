// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// ForceQuit exits from any screen.
	ForceQuit key.Binding

	// Quit exits from the prompt.
	Quit key.Binding

	// HistoryNext recalls an older query.
	HistoryNext key.Binding

	// HistoryPrev recalls a newer query.
	HistoryPrev key.Binding

	// Submit runs the typed query.
	Submit key.Binding

	// Back returns from results to the prompt.
	Back key.Binding

	// Filter starts editing the results filter.
	Filter key.Binding

	// Up selects the previous match.
	Up key.Binding

	// Down selects the next match.
	Down key.Binding

	// Open opens the selected result in the browser.
	Open key.Binding

	// View shows the selected fragment in a pager.
	View key.Binding

	// Copy copies the selected result URL.
	Copy key.Binding

	// Apply commits the filter being edited.
	Apply key.Binding

	// Cancel leaves the filter input.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓", "older"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑", "newer"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", "ctrl+l"),
			key.WithHelp("enter", "search"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter/l", "open"),
		),
		View: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "done"),
		),
	}
}

// PromptHelp returns keybindings for the prompt screen.
func (k *KeyMap) PromptHelp() []key.Binding {
	return []key.Binding{k.Submit, k.HistoryNext, k.HistoryPrev, k.Quit}
}

// ResultsHelp returns keybindings for the results screen.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Open, k.Filter, k.View, k.Copy, k.Back}
}

// FilterHelp returns keybindings while the filter is being edited.
func (k *KeyMap) FilterHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Cancel}
}

// ShortHelp implements help.KeyMap.
func (k *KeyMap) ShortHelp() []key.Binding {
	return k.ResultsHelp()
}

// FullHelp implements help.KeyMap.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.PromptHelp(),
		k.ResultsHelp(),
		k.FilterHelp(),
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
