package highlight

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether x lies in [Start, End).
func (r Range) Contains(x int) bool {
	return r.Start <= x && x < r.End
}

// Overlaps reports whether either range contains the other's start or end.
//
// Containment is half-open, but because ends are tested too a range whose
// end equals the other's start counts as overlapping. Fill relies on this
// boundary rule; zero-width results are dropped there.
func (r Range) Overlaps(o Range) bool {
	return o.Contains(r.Start) || o.Contains(r.End) ||
		r.Contains(o.Start) || r.Contains(o.End)
}

// Segment is a sub-range tagged as matched or unmatched.
type Segment struct {
	Range Range
	Match bool
}

// Fill returns segments that exactly and contiguously cover context.
//
// Candidates must be sorted ascending and must not overlap each other.
// Candidates outside context are skipped, partially overlapping ones are
// clamped to it, and the gaps between them become unmatched segments.
// Zero-length segments are never returned.
//
// e.g. given 11..20, 32..40 in context 0..100 it returns
// 0..11, 11..20, 20..32, 32..40, 40..100
func Fill(context Range, candidates []Range) []Segment {
	var out []Segment

	cursor := context.Start
	for _, c := range candidates {
		if !context.Overlaps(c) {
			continue
		}

		if cursor < c.Start {
			out = append(out, Segment{Range: Range{Start: cursor, End: c.Start}})
			cursor = c.Start
		}

		start := max(c.Start, cursor)
		end := min(c.End, context.End)
		if end > start {
			out = append(out, Segment{Range: Range{Start: start, End: end}, Match: true})
		}

		cursor = max(cursor, end)
	}

	if cursor < context.End {
		out = append(out, Segment{Range: Range{Start: cursor, End: context.End}})
	}

	return out
}
