package results

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/canvas"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/state"
	"github.com/custodia-labs/ghs/internal/highlight"
)

// Canvas palette slots.
const (
	styleNormal canvas.StyleID = iota
	styleMatch
	styleSelected
	styleSelectedMatch
	styleRule
)

// blockMargin is the number of blank rows below each block.
const blockMargin = 2

// block is one text match laid out on the results canvas: a title rule,
// the fragment lines, then the margin.
type block struct {
	entry state.Entry
	lines []highlight.RenderedLine
	start int
}

func (b block) height() int {
	return len(b.lines) + 1 + blockMargin
}

func (b block) end() int {
	return b.start + b.height()
}

// layout splits every entry's fragment into lines and stacks the blocks.
// It returns the blocks and the total canvas height.
func layout(entries []state.Entry, opts highlight.Options) ([]block, int) {
	blocks := make([]block, 0, len(entries))
	y := 0
	for _, e := range entries {
		b := block{entry: e, lines: highlight.Fragment(*e.Match, opts), start: y}
		blocks = append(blocks, b)
		y = b.end()
	}
	return blocks, y
}

// keepInView returns the scroll offset adjusted so rows [start, end) are
// visible in a viewport of the given height. When the range is taller than
// the viewport its start wins.
func keepInView(scroll, start, end, height int) int {
	if end > scroll+height {
		scroll = end - height
	}
	if start < scroll {
		scroll = start
	}
	return scroll
}

func (v *View) palette() []lipgloss.Style {
	return []lipgloss.Style{
		styleNormal:        v.styles.Normal,
		styleMatch:         v.styles.Match,
		styleSelected:      v.styles.Selected,
		styleSelectedMatch: v.styles.SelectedMatch,
		styleRule:          v.styles.Rule,
	}
}

// renderBody renders the area above the footer for the current phase.
func (v *View) renderBody(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	var text string
	switch v.search.Phase() {
	case state.PhaseIdle:
		text = "No search results yet. Press Esc to go back."
	case state.PhaseLoading:
		text = fmt.Sprintf("%s Loading results for: %s", v.styles.Spinner(v.tick), v.search.Query().Text)
	default:
		if out, ok := v.renderResults(width, height); ok {
			return out
		}
		if v.filter.Mode() != state.FilterInactive && v.filter.Input() != "" {
			text = "No results match the filter."
		} else {
			text = "No results."
		}
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// layoutKey identifies the inputs a cached layout was built from.
type layoutKey struct {
	version  int
	filter   string
	tabWidth int
}

// layoutCache holds the blocks of the visible entries between frames.
type layoutCache struct {
	key    layoutKey
	valid  bool
	blocks []block
	total  int
	builds int
}

// layout returns the blocks for the visible entries, rebuilding them only
// when the results, the filter or the tab width changed since the last call.
func (v *View) layout() ([]block, int) {
	tabWidth := v.styles.Theme().TabWidth
	key := layoutKey{version: v.search.Version(), tabWidth: tabWidth}
	if v.filter.Mode() != state.FilterInactive {
		key.filter = v.filter.Input()
	}
	if !v.cache.valid || v.cache.key != key {
		v.cache.blocks, v.cache.total = layout(v.Entries(), highlight.Options{TabWidth: tabWidth})
		v.cache.key = key
		v.cache.valid = true
		v.cache.builds++
	}
	return v.cache.blocks, v.cache.total
}

// renderResults scrolls so the selected block is in view, draws the blocks
// crossing the viewport into an off-screen canvas spanning just those
// blocks, and copies the visible window into a screen-sized canvas. It
// reports false when there is nothing to draw.
func (v *View) renderResults(width, height int) (string, bool) {
	blocks, total := v.layout()
	if len(blocks) == 0 {
		return "", false
	}

	v.selected = min(max(v.selected, 0), len(blocks)-1)
	selected := blocks[v.selected]

	v.scroll = min(v.scroll, max(total-height, 0))
	v.scroll = keepInView(v.scroll, selected.start, selected.end(), height)

	// Blocks are stacked in order, so the ones crossing the viewport are
	// contiguous.
	first := sort.Search(len(blocks), func(i int) bool { return blocks[i].end() > v.scroll })
	last := first
	for last < len(blocks) && blocks[last].start < v.scroll+height {
		last++
	}

	palette := v.palette()
	screen := canvas.New(width, height, palette...)
	if first == last {
		return screen.String(), true
	}

	top := blocks[first].start
	off := canvas.New(width, blocks[last-1].end()-top, palette...)
	for i := first; i < last; i++ {
		drawBlock(off, blocks[i], top, i == v.selected)
	}
	screen.Blit(off, 0, v.scroll-top, width, height, 0, 0)
	return screen.String(), true
}

// drawBlock renders one text match with canvas row top at row 0 of g.
// A focused block is drawn inverted.
func drawBlock(g *canvas.Grid, b block, top int, focused bool) {
	rule, normal, match := styleRule, styleNormal, styleMatch
	if focused {
		rule, normal, match = styleSelected, styleSelected, styleSelectedMatch
	}

	title := fmt.Sprintf(" %s %s ", b.entry.Item.Repository.FullName, b.entry.Item.Path)
	y := b.start - top
	x := g.SetString(0, y, "─", rule)
	x = g.SetString(x, y, title, rule)
	for x < g.Width() {
		next := g.SetString(x, y, "─", rule)
		if next == x {
			break
		}
		x = next
	}

	for i, line := range b.lines {
		row := y + 1 + i
		if focused {
			g.Fill(0, row, styleSelected)
		}
		x := 0
		for _, span := range line.Spans {
			st := normal
			if span.Match {
				st = match
			}
			x = g.SetString(x, row, span.Text, st)
		}
	}
}
