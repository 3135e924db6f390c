// Package state holds the search and filter state machines driven by the
// TUI. Nothing here performs I/O: transitions return the request to issue
// and the caller turns it into a tea.Cmd.
package state
