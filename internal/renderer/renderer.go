package renderer

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/engine/snapshot"
	"github.com/dshills/keydraft/internal/style"
)

// DefaultPlaceholder is shown in an empty document.
const DefaultPlaceholder = "Tell a story..."

// Surface is the part of tcell.Screen the renderer draws on.
type Surface interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
	Clear()
	Show()
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles sets the style table.
func WithStyles(t *style.Table) Option {
	return func(r *Renderer) {
		if t != nil {
			r.styles = t
		}
	}
}

// WithPlaceholder sets the placeholder text.
func WithPlaceholder(s string) Option {
	return func(r *Renderer) {
		r.placeholder = s
	}
}

// Renderer draws snapshots on a Surface. It keeps the scroll position
// between draws, so use one Renderer per surface.
type Renderer struct {
	surface     Surface
	styles      *style.Table
	placeholder string
	top         int
}

// New creates a renderer.
func New(s Surface, opts ...Option) *Renderer {
	r := &Renderer{
		surface:     s,
		styles:      style.DefaultTable(),
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetStyles replaces the style table.
func (r *Renderer) SetStyles(t *style.Table) {
	if t != nil {
		r.styles = t
	}
}

// SetPlaceholder replaces the placeholder text.
func (r *Renderer) SetPlaceholder(s string) {
	r.placeholder = s
}

// ShowPlaceholder reports whether the placeholder is drawn for m: only
// when the document has no text and its first block is unstyled, so an
// empty heading does not show the hint in the wrong style.
func ShowPlaceholder(m *content.Model) bool {
	return !m.HasText() && m.First().Type() == content.Unstyled
}

// Draw renders snap with message on the status line.
func (r *Renderer) Draw(snap snapshot.Snapshot, message string) {
	width, height := r.surface.Size()
	r.surface.Clear()
	if width <= 0 || height <= 0 {
		r.surface.Show()
		return
	}

	textRows := height - 1
	if height == 1 {
		textRows = 1
	}

	m := snap.Content()
	blocks := m.Blocks()
	texts := make([][]rune, len(blocks))
	for i, b := range blocks {
		texts[i] = []rune(b.Text())
	}
	runes := func(i int) []rune { return texts[i] }

	rows := layout(m, r.styles.Gutter, width)
	sel := snap.Selection()
	cursorRow, cursorCol := locate(rows, runes, m.Index(sel.FocusKey), sel.FocusOffset)

	if cursorRow < r.top {
		r.top = cursorRow
	}
	if cursorRow >= r.top+textRows {
		r.top = cursorRow - textRows + 1
	}
	r.top = max(0, min(r.top, len(rows)-1))

	selStart, selEnd := selectionBounds(snap)
	for y := 0; y < textRows && r.top+y < len(rows); y++ {
		rw := rows[r.top+y]
		b := blocks[rw.block]
		x := r.drawString(0, y, width, rw.gutter, r.styles.Resolve(nil, b.Type()))
		for k := rw.start; k < rw.end && x < width; k++ {
			st := r.styles.Resolve(b.StylesAt(k), b.Type())
			if inSelection(selStart, selEnd, rw.block, k) {
				st = st.Reverse(true)
			}
			r.surface.SetContent(x, y, texts[rw.block][k], nil, st)
			x += runeWidth(texts[rw.block][k])
		}
	}

	if ShowPlaceholder(m) && r.placeholder != "" && len(rows) > 0 {
		r.drawString(stringWidth(rows[0].gutter), 0, width, r.placeholder, r.styles.Base().Dim(true))
	}

	if height > 1 {
		r.drawStatus(height-1, width, snap, message)
	}

	if cursorRow >= r.top && cursorRow < r.top+textRows && cursorCol < width {
		r.surface.ShowCursor(cursorCol, cursorRow-r.top)
	} else {
		r.surface.HideCursor()
	}
	r.surface.Show()
}

// drawString draws s from x and returns the column after it.
func (r *Renderer) drawString(x, y, width int, s string, st tcell.Style) int {
	for _, ch := range s {
		if x >= width {
			break
		}
		r.surface.SetContent(x, y, ch, nil, st)
		x += runeWidth(ch)
	}
	return x
}

func (r *Renderer) drawStatus(y, width int, snap snapshot.Snapshot, message string) {
	st := r.styles.Base().Reverse(true)
	for x := 0; x < width; x++ {
		r.surface.SetContent(x, y, ' ', nil, st)
	}
	right := StatusInfo(snap)
	r.drawString(1, y, width, message, st)
	if x := width - stringWidth(right) - 1; x > stringWidth(message)+2 {
		r.drawString(x, y, width, right, st)
	}
}

// StatusInfo describes the caret position for the status line: the block
// type, the styles the next typed text will carry, and the revision.
func StatusInfo(snap snapshot.Snapshot) string {
	typ := content.Unstyled
	if b, ok := snap.FocusBlock(); ok {
		typ = b.Type()
	}
	parts := []string{string(typ)}
	if styles := snap.CurrentInlineStyles(); len(styles) > 0 {
		names := make([]string, len(styles))
		for i, s := range styles {
			names[i] = string(s)
		}
		parts = append(parts, strings.Join(names, "+"))
	}
	parts = append(parts, fmt.Sprintf("rev %d", snap.Revision()))
	return strings.Join(parts, " · ")
}

type position struct {
	block  int
	offset int
}

// selectionBounds returns the selected span in document order. A caret
// yields an empty span.
func selectionBounds(snap snapshot.Snapshot) (position, position) {
	m, sel := snap.Content(), snap.Selection()
	sk, so := sel.Start(m)
	ek, eo := sel.End(m)
	return position{m.Index(sk), so}, position{m.Index(ek), eo}
}

func inSelection(start, end position, block, offset int) bool {
	p := position{block, offset}
	return !less(p, start) && less(p, end)
}

func less(a, b position) bool {
	if a.block != b.block {
		return a.block < b.block
	}
	return a.offset < b.offset
}
