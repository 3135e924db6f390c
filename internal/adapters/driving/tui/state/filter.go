package state

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// FilterMode is the stage of the results filter.
type FilterMode int

const (
	// FilterInactive shows every result.
	FilterInactive FilterMode = iota
	// FilterEditing routes keys to the filter input.
	FilterEditing
	// FilterApplied narrows results while keys navigate again.
	FilterApplied
)

// String returns the string representation of the mode.
func (m FilterMode) String() string {
	switch m {
	case FilterInactive:
		return "inactive"
	case FilterEditing:
		return "editing"
	case FilterApplied:
		return "applied"
	default:
		return "unknown"
	}
}

// Filter narrows the results view to matches containing a substring.
type Filter struct {
	mode   FilterMode
	input  string
	folded string
	caser  cases.Caser
}

// NewFilter creates an inactive filter.
func NewFilter() *Filter {
	return &Filter{caser: cases.Fold()}
}

// Mode returns the current mode.
func (f *Filter) Mode() FilterMode {
	return f.mode
}

// Input returns the filter text.
func (f *Filter) Input() string {
	return f.input
}

// Begin starts editing. The existing text is kept so an applied filter can
// be refined.
func (f *Filter) Begin() {
	f.mode = FilterEditing
}

// Commit applies the text being edited.
func (f *Filter) Commit() {
	if f.mode == FilterEditing {
		f.mode = FilterApplied
	}
}

// Escape steps the filter back one stage: editing keeps a non-empty filter
// applied, and an applied filter is cleared. It reports false when the
// filter was already inactive, leaving the caller to handle the key.
func (f *Filter) Escape() bool {
	switch f.mode {
	case FilterEditing:
		if f.input == "" {
			f.mode = FilterInactive
		} else {
			f.mode = FilterApplied
		}
		return true
	case FilterApplied:
		f.Reset()
		return true
	default:
		return false
	}
}

// SetInput replaces the text being edited and reports whether it changed.
func (f *Filter) SetInput(s string) bool {
	if f.mode != FilterEditing || s == f.input {
		return false
	}
	f.input = s
	f.folded = f.caser.String(s)
	return true
}

// Reset clears the filter.
func (f *Filter) Reset() {
	f.mode = FilterInactive
	f.input = ""
	f.folded = ""
}

// Matches reports whether a text match of item passes the filter.
// The comparison is a case-folded substring test against the item path,
// the repository full name and the fragment.
func (f *Filter) Matches(item *domain.Item, tm *domain.TextMatch) bool {
	if f.mode == FilterInactive || f.folded == "" {
		return true
	}
	for _, s := range []string{item.Path, item.Repository.FullName, tm.Fragment} {
		if strings.Contains(f.caser.String(s), f.folded) {
			return true
		}
	}
	return false
}

// Entry is one navigable text match in the results view.
type Entry struct {
	Item  *domain.Item
	Match *domain.TextMatch
}

// Visible flattens results into the entries passing f, in result order.
// The returned pointers alias results.
func Visible(results domain.CodeResults, f *Filter) []Entry {
	out := make([]Entry, 0, results.Count())
	for i := range results.Items {
		item := &results.Items[i]
		for j := range item.TextMatches {
			tm := &item.TextMatches[j]
			if f == nil || f.Matches(item, tm) {
				out = append(out, Entry{Item: item, Match: tm})
			}
		}
	}
	return out
}
