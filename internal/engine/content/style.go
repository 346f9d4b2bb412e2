package content

import (
	"fmt"
	"slices"
	"strings"
)

// StyleRange tags the half-open interval [Start, End) of a block's text
// with a single inline style.
type StyleRange struct {
	Style InlineStyle
	Start int
	End   int
}

// Range returns the interval covered by the style range.
func (s StyleRange) Range() Range {
	return Range{Start: s.Start, End: s.End}
}

// String returns a human-readable representation of the style range.
func (s StyleRange) String() string {
	return fmt.Sprintf("%s[%d:%d)", s.Style, s.Start, s.End)
}

func compareStyleRanges(a, b StyleRange) int {
	if c := strings.Compare(string(a.Style), string(b.Style)); c != 0 {
		return c
	}
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	return a.End - b.End
}

// normalizeStyles sorts ranges by style then start, drops empty ranges and
// merges overlapping or adjacent ranges of the same style.
// The input slice is not modified.
func normalizeStyles(in []StyleRange) []StyleRange {
	if len(in) == 0 {
		return nil
	}
	rs := make([]StyleRange, 0, len(in))
	for _, r := range in {
		if r.Start < r.End {
			rs = append(rs, r)
		}
	}
	slices.SortFunc(rs, compareStyleRanges)

	out := rs[:0]
	for _, r := range rs {
		if n := len(out); n > 0 && out[n-1].Style == r.Style && r.Start <= out[n-1].End {
			if r.End > out[n-1].End {
				out[n-1].End = r.End
			}
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil
	}
	return slices.Clip(out)
}

// addStyle returns rs with style applied over r.
func addStyle(rs []StyleRange, style InlineStyle, r Range) []StyleRange {
	if r.IsEmpty() {
		return rs
	}
	out := make([]StyleRange, 0, len(rs)+1)
	out = append(out, rs...)
	out = append(out, StyleRange{Style: style, Start: r.Start, End: r.End})
	return normalizeStyles(out)
}

// removeStyle returns rs with style cleared over r.
func removeStyle(rs []StyleRange, style InlineStyle, r Range) []StyleRange {
	if r.IsEmpty() {
		return rs
	}
	out := make([]StyleRange, 0, len(rs)+1)
	for _, s := range rs {
		if s.Style != style || !s.Range().Overlaps(r) {
			out = append(out, s)
			continue
		}
		if s.Start < r.Start {
			out = append(out, StyleRange{Style: style, Start: s.Start, End: r.Start})
		}
		if s.End > r.End {
			out = append(out, StyleRange{Style: style, Start: r.End, End: s.End})
		}
	}
	return normalizeStyles(out)
}

// covers reports whether every code point in r carries style.
// rs must be normalized, so a covered range lies inside a single interval.
func covers(rs []StyleRange, style InlineStyle, r Range) bool {
	if r.IsEmpty() {
		return false
	}
	for _, s := range rs {
		if s.Style == style && s.Range().ContainsRange(r) {
			return true
		}
	}
	return false
}

// stylesAt returns the styles covering the code point at offset, sorted by name.
func stylesAt(rs []StyleRange, offset int) []InlineStyle {
	var out []InlineStyle
	for _, s := range rs {
		if offset >= s.Start && offset < s.End && !slices.Contains(out, s.Style) {
			out = append(out, s.Style)
		}
	}
	return out
}

// clipStyles keeps the parts of rs that fall inside r and rebases them so
// that r.Start becomes offset zero.
func clipStyles(rs []StyleRange, r Range) []StyleRange {
	var out []StyleRange
	for _, s := range rs {
		in := s.Range().Intersect(r)
		if in.IsEmpty() {
			continue
		}
		out = append(out, StyleRange{Style: s.Style, Start: in.Start - r.Start, End: in.End - r.Start})
	}
	return out
}

// shiftStyles rebases every range by delta.
func shiftStyles(rs []StyleRange, delta int) []StyleRange {
	out := make([]StyleRange, len(rs))
	for i, s := range rs {
		out[i] = StyleRange{Style: s.Style, Start: s.Start + delta, End: s.End + delta}
	}
	return out
}

// remapStyles adjusts ranges for the replacement of [r.Start, r.End) with
// inserted code points.
//
// Boundary policy:
//   - a range inside the deleted span disappears;
//   - a range straddling one edge keeps only its surviving part;
//   - a range strictly containing the edit point grows over the inserted text;
//   - a range merely touching the edit point does not grow.
func remapStyles(rs []StyleRange, r Range, inserted int) []StyleRange {
	delta := inserted - r.Len()
	out := make([]StyleRange, 0, len(rs))
	for _, s := range rs {
		start := s.Start
		switch {
		case s.Start < r.Start:
		case s.Start >= r.End:
			start = s.Start + delta
		default:
			start = r.Start + inserted
		}

		end := s.End
		switch {
		case s.End <= r.Start:
		case s.End > r.End:
			end = s.End + delta
		default:
			end = r.Start
		}

		if start < end {
			out = append(out, StyleRange{Style: s.Style, Start: start, End: end})
		}
	}
	return normalizeStyles(out)
}
