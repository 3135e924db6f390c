// Package canvas provides a fixed-size grid of styled terminal cells.
//
// Content taller than the screen is drawn into an off-screen Grid and a
// window of it is copied into the screen Grid with Blit. Every write is
// bounds-checked and out-of-range cells are skipped.
package canvas

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// StyleID indexes the palette a Grid was created with. Zero is the
// palette's first entry.
type StyleID int

// Cell is a single terminal column.
type Cell struct {
	// Content is the grapheme drawn in the cell. A wide rune's trailing
	// column has empty Content.
	Content string
	Style   StyleID
}

var blank = Cell{Content: " "}

// Grid is a width by height array of cells.
type Grid struct {
	width   int
	height  int
	cells   []Cell
	palette []lipgloss.Style
}

// New creates a blank grid. Negative sizes are treated as zero.
// With no palette a single unstyled entry is used.
func New(width, height int, palette ...lipgloss.Style) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	if len(palette) == 0 {
		palette = []lipgloss.Style{lipgloss.NewStyle()}
	}

	g := &Grid{
		width:   width,
		height:  height,
		cells:   make([]Cell, width*height),
		palette: palette,
	}
	g.Clear()
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Clear blanks every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blank
	}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Cell returns the cell at (x, y) and whether it exists.
func (g *Grid) Cell(x, y int) (Cell, bool) {
	if !g.inBounds(x, y) {
		return Cell{}, false
	}
	return g.cells[y*g.width+x], true
}

// Set writes a cell. Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.inBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// SetString writes s starting at (x, y) and returns the column after the
// last one written. Text past the right edge is clipped; a wide rune that
// would straddle the edge is dropped.
func (g *Grid) SetString(x, y int, s string, style StyleID) int {
	for _, r := range s {
		// Control runes would reach the terminal as raw escape sequences.
		if unicode.IsControl(r) {
			r = unicode.ReplacementChar
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if c, ok := g.Cell(x-1, y); ok && c.Content != "" {
				c.Content += string(r)
				g.Set(x-1, y, c)
			}
			continue
		}
		if x+w > g.width {
			return x
		}
		g.Set(x, y, Cell{Content: string(r), Style: style})
		for i := 1; i < w; i++ {
			g.Set(x+i, y, Cell{Style: style})
		}
		x += w
	}
	return x
}

// Fill sets the style of every cell in the row from x to the right edge.
func (g *Grid) Fill(x, y int, style StyleID) {
	for ; x < g.width; x++ {
		if c, ok := g.Cell(x, y); ok {
			c.Style = style
			g.Set(x, y, c)
		}
	}
}

// Blit copies the w by h window of src at (sx, sy) into g at (dx, dy).
// Source or destination cells outside their grid are skipped.
func (g *Grid) Blit(src *Grid, sx, sy, w, h, dx, dy int) {
	if src == nil {
		return
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c, ok := src.Cell(sx+col, sy+row)
			if !ok {
				continue
			}
			g.Set(dx+col, dy+row, c)
		}
	}
}

// String renders the grid, one line per row, with consecutive cells of the
// same style rendered together.
func (g *Grid) String() string {
	var b strings.Builder
	var run strings.Builder

	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}

		current := StyleID(-1)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(g.style(current).Render(run.String()))
			run.Reset()
		}

		for x := 0; x < g.width; x++ {
			c := g.cells[y*g.width+x]
			content := c.Content
			if content == "" {
				if prev, ok := g.Cell(x-1, y); ok && runewidth.StringWidth(prev.Content) > 1 {
					continue
				}
				content = " "
			}
			if c.Style != current {
				flush()
				current = c.Style
			}
			run.WriteString(content)
		}
		flush()
	}
	return b.String()
}

func (g *Grid) style(id StyleID) lipgloss.Style {
	if id < 0 || int(id) >= len(g.palette) {
		return g.palette[0]
	}
	return g.palette[id]
}
