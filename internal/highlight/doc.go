// Package highlight turns code fragments and byte-offset match ranges into
// alternating matched and unmatched spans, one slice of spans per line.
//
// The package has three layers:
//
//   - Lines splits a fragment into lines carrying absolute byte offsets.
//   - Fill covers a context range with matched/unmatched segments.
//   - Fragment combines the two for a domain.TextMatch.
//
// All offsets are byte offsets into the original fragment text. Display
// substitutions (tab expansion, carriage return removal) are applied to
// span text only after slicing, so they never shift highlighted ranges.
package highlight
