package highlight

import (
	"strings"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// DefaultTabWidth is the number of spaces a tab expands to.
const DefaultTabWidth = domain.DefaultTabWidth

// Span is a run of display text that is either matched or not.
type Span struct {
	Text  string
	Match bool
}

// RenderedLine is the display form of one fragment line.
type RenderedLine struct {
	// Start is the absolute byte offset of the source line.
	Start int

	// Spans are the display runs in order. An empty line has none.
	Spans []Span
}

// Text returns the concatenated display text of the line.
func (l RenderedLine) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Options control display substitutions.
type Options struct {
	// TabWidth is the number of spaces per tab. Zero uses DefaultTabWidth.
	TabWidth int
}

// Fragment splits a text match into display lines with matched runs marked.
//
// Segments are computed and sliced against the original line content.
// Tabs are expanded and carriage returns removed per span afterwards, so a
// tab before a match never shifts the highlighted text.
func Fragment(tm domain.TextMatch, opts Options) []RenderedLine {
	tabs := strings.Repeat(" ", tabWidth(opts))
	ranges := MatchRanges(tm.Matches)

	out := make([]RenderedLine, 0, CountLines(tm.Fragment))
	for line := range Lines(tm.Fragment) {
		rl := RenderedLine{Start: line.Start}
		for _, seg := range Fill(line.Range(), ranges) {
			local := line.Content[seg.Range.Start-line.Start : seg.Range.End-line.Start]
			text := cleanText(local, tabs)
			if text == "" {
				continue
			}
			rl.Spans = append(rl.Spans, Span{Text: text, Match: seg.Match})
		}
		out = append(out, rl)
	}
	return out
}

// MatchRanges converts match segments into byte ranges, in input order.
func MatchRanges(matches []domain.MatchSegment) []Range {
	out := make([]Range, 0, len(matches))
	for _, m := range matches {
		out = append(out, Range{Start: m.Start(), End: m.End()})
	}
	return out
}

func cleanText(s, tabs string) string {
	if strings.IndexByte(s, '\t') >= 0 {
		s = strings.ReplaceAll(s, "\t", tabs)
	}
	if strings.IndexByte(s, '\r') >= 0 {
		s = strings.ReplaceAll(s, "\r", "")
	}
	return s
}

func tabWidth(opts Options) int {
	if opts.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return opts.TabWidth
}
