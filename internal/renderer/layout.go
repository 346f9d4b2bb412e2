package renderer

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/keydraft/internal/engine/content"
)

// row is one screen row of a block: the code points [start, end).
type row struct {
	block  int
	start  int
	end    int
	last   bool
	gutter string
}

// runeWidth returns the number of cells r occupies. Zero-width runes are
// given a cell of their own so the caret can always be placed on them.
func runeWidth(r rune) int {
	if w := uniseg.StringWidth(string(r)); w > 0 {
		return w
	}
	return 1
}

// stringWidth returns the number of cells s occupies.
func stringWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

// wrap splits runes into rows no wider than width cells. Rows break after
// the last space that fits; a word longer than a row is broken hard.
func wrap(runes []rune, width int) [][2]int {
	if width < 1 {
		width = 1
	}
	if len(runes) == 0 {
		return [][2]int{{0, 0}}
	}

	var out [][2]int
	start := 0
	for start < len(runes) {
		used, end, lastSpace := 0, start, -1
		for end < len(runes) {
			w := runeWidth(runes[end])
			if used+w > width && end > start {
				break
			}
			used += w
			if runes[end] == ' ' {
				lastSpace = end
			}
			end++
		}
		if end < len(runes) && lastSpace >= start && lastSpace+1 < end {
			end = lastSpace + 1
		}
		out = append(out, [2]int{start, end})
		start = end
	}
	return out
}

// layout wraps every block of m into rows of width cells, gutter included.
func layout(m *content.Model, gutter func(content.BlockType) string, width int) []row {
	var rows []row
	for i, b := range m.Blocks() {
		g := gutter(b.Type())
		spans := wrap([]rune(b.Text()), width-stringWidth(g))
		for j, sp := range spans {
			rows = append(rows, row{
				block:  i,
				start:  sp[0],
				end:    sp[1],
				last:   j == len(spans)-1,
				gutter: g,
			})
		}
	}
	return rows
}

// locate returns the row index and the cell column of a position.
// An offset on a wrap boundary belongs to the row it starts.
func locate(rows []row, runes func(block int) []rune, block, offset int) (int, int) {
	for i, r := range rows {
		if r.block != block || offset < r.start || (offset >= r.end && !r.last) {
			continue
		}
		col := stringWidth(r.gutter)
		text := runes(block)
		for k := r.start; k < offset && k < len(text); k++ {
			col += runeWidth(text[k])
		}
		return i, col
	}
	return 0, 0
}
