package highlight

import (
	"iter"
	"strings"
)

// Line is one logical line of a fragment.
type Line struct {
	// Content is the line text without its terminator.
	Content string

	// Start is the absolute byte offset of Content in the fragment.
	Start int

	// Terminator is the byte width of the consumed line ending:
	// 2 for "\r\n", 1 for "\n" and 0 for the final line.
	Terminator int
}

// End returns the absolute byte offset just past Content.
func (l Line) End() int {
	return l.Start + len(l.Content)
}

// Range returns the absolute byte range covered by Content.
func (l Line) Range() Range {
	return Range{Start: l.Start, End: l.End()}
}

// Lines returns the lines of s in order. The sequence can be ranged over
// any number of times.
//
// "\r\n" and "\n" both end a line; a lone "\r" is line content. Consecutive
// terminators yield empty lines, and a trailing terminator yields a final
// empty line, so the empty string has exactly one (empty) line.
func Lines(s string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		offset := 0
		rest := s
		for {
			i := strings.IndexByte(rest, '\n')
			if i < 0 {
				yield(Line{Content: rest, Start: offset})
				return
			}

			end, width := i, 1
			if i > 0 && rest[i-1] == '\r' {
				end, width = i-1, 2
			}

			if !yield(Line{Content: rest[:end], Start: offset, Terminator: width}) {
				return
			}

			offset += i + 1
			rest = rest[i+1:]
		}
	}
}

// CountLines returns the number of lines Lines yields for s.
func CountLines(s string) int {
	return strings.Count(s, "\n") + 1
}
