package domain

// MaxHistorySize is the maximum number of queries kept in history.
const MaxHistorySize = 100

// History is the list of previously submitted queries, most recent first.
// Selected is -1 when no entry is highlighted for recall.
type History struct {
	Searches []string
	Selected int
}

// NewHistory creates a history from stored searches, truncating to
// MaxHistorySize.
func NewHistory(searches []string) *History {
	if len(searches) > MaxHistorySize {
		searches = searches[:MaxHistorySize]
	}
	out := make([]string, len(searches))
	copy(out, searches)
	return &History{Searches: out, Selected: -1}
}

// Add records a query at the front, removing any earlier occurrence.
func (h *History) Add(query string) {
	kept := h.Searches[:0:0]
	for _, s := range h.Searches {
		if s != query {
			kept = append(kept, s)
		}
	}

	h.Searches = append([]string{query}, kept...)
	if len(h.Searches) > MaxHistorySize {
		h.Searches = h.Searches[:MaxHistorySize]
	}
}

// SelectNext moves the highlight towards older entries, stopping at the last.
func (h *History) SelectNext() {
	if len(h.Searches) == 0 {
		return
	}
	if h.Selected < 0 {
		h.Selected = 0
		return
	}
	h.Selected = min(h.Selected+1, len(h.Searches)-1)
}

// SelectPrev moves the highlight towards newer entries, stopping at the first.
func (h *History) SelectPrev() {
	if len(h.Searches) == 0 {
		return
	}
	if h.Selected < 0 {
		h.Selected = 0
		return
	}
	h.Selected = max(h.Selected-1, 0)
}

// SelectedQuery returns the highlighted query, if any.
func (h *History) SelectedQuery() (string, bool) {
	if h.Selected < 0 || h.Selected >= len(h.Searches) {
		return "", false
	}
	return h.Searches[h.Selected], true
}

// ClearSelection removes the highlight.
func (h *History) ClearSelection() {
	h.Selected = -1
}

// Snapshot returns a copy of the searches safe to hand to another goroutine.
func (h *History) Snapshot() []string {
	out := make([]string, len(h.Searches))
	copy(out, h.Searches)
	return out
}
