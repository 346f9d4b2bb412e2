package transform

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/engine/selection"
	"github.com/dshills/keydraft/internal/engine/snapshot"
)

// deleteSelection removes the selected text and returns the model with a
// caret at the start of the removed span. A caret is returned unchanged.
func deleteSelection(snap snapshot.Snapshot) (*content.Model, selection.Selection, error) {
	m, sel := snap.Content(), snap.Selection()
	if err := sel.Validate(m); err != nil {
		return nil, sel, err
	}
	if sel.IsCollapsed() {
		return m, sel, nil
	}
	sk, so := sel.Start(m)
	ek, eo := sel.End(m)
	next, err := content.DeleteSpan(m, sk, so, ek, eo)
	if err != nil {
		return nil, sel, err
	}
	return next, selection.Collapsed(sk, so), nil
}

// InsertText replaces the selection with text. The text carries the inline
// override when one is set, or the inherited styles otherwise. Newlines in
// text split the block.
func InsertText(snap snapshot.Snapshot, text string) (snapshot.Snapshot, bool) {
	if text == "" {
		return snap, false
	}
	styles := snap.CurrentInlineStyles()

	m, caret, err := deleteSelection(snap)
	if err != nil {
		return snap, false
	}

	k, off := caret.FocusKey, caret.FocusOffset
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			if m, err = content.SplitBlock(m, k, off, ""); err != nil {
				return snap, false
			}
			k, off = m.BlockAt(m.Index(k)+1).Key(), 0
		}
		if line == "" {
			continue
		}
		if m, err = content.ReplaceRangeStyled(m, k, content.NewRange(off, off), line, styles); err != nil {
			return snap, false
		}
		off += utf8.RuneCountInString(line)
	}
	return snap.Next(m, selection.Collapsed(k, off)), true
}

// SplitBlock replaces the selection with a block break and puts the caret
// at the start of the new block.
func SplitBlock(snap snapshot.Snapshot) (snapshot.Snapshot, bool) {
	m, caret, err := deleteSelection(snap)
	if err != nil {
		return snap, false
	}
	m, err = content.SplitBlock(m, caret.FocusKey, caret.FocusOffset, "")
	if err != nil {
		return snap, false
	}
	tail := m.BlockAt(m.Index(caret.FocusKey) + 1)
	return snap.Next(m, selection.Collapsed(tail.Key(), 0)), true
}

// Backspace deletes the selection, or the code point before the caret.
//
// At the start of a styled block the block type is reset to unstyled first;
// at the start of an unstyled block the block is merged into the previous
// one. Backspace at the very start of the document does nothing.
func Backspace(snap snapshot.Snapshot) (snapshot.Snapshot, bool) {
	sel := snap.Selection()
	if !sel.IsCollapsed() {
		m, caret, err := deleteSelection(snap)
		if err != nil {
			return snap, false
		}
		return snap.Next(m, caret), true
	}

	m := snap.Content()
	if err := sel.Validate(m); err != nil {
		return snap, false
	}
	b, _ := m.Block(sel.FocusKey)

	if sel.FocusOffset > 0 {
		off := sel.FocusOffset
		next, err := content.ReplaceRange(m, b.Key(), content.NewRange(off-1, off), "")
		if err != nil {
			return snap, false
		}
		return snap.Next(next, selection.Collapsed(b.Key(), off-1)), true
	}

	if b.Type() != content.Unstyled {
		next, err := content.SetBlockType(m, b.Key(), content.Unstyled)
		if err != nil {
			return snap, false
		}
		return snap.Next(next, sel), true
	}

	i := m.Index(b.Key())
	if i == 0 {
		return snap, false
	}
	prevKey := m.BlockAt(i - 1).Key()
	next, join, err := content.MergeWithPrevious(m, b.Key())
	if err != nil {
		return snap, false
	}
	return snap.Next(next, selection.Collapsed(prevKey, join)), true
}

// Delete deletes the selection, or the code point after the caret. At the
// end of a block the next block is merged into it.
func Delete(snap snapshot.Snapshot) (snapshot.Snapshot, bool) {
	sel := snap.Selection()
	if !sel.IsCollapsed() {
		m, caret, err := deleteSelection(snap)
		if err != nil {
			return snap, false
		}
		return snap.Next(m, caret), true
	}

	m := snap.Content()
	if err := sel.Validate(m); err != nil {
		return snap, false
	}
	b, _ := m.Block(sel.FocusKey)

	off := sel.FocusOffset
	if off < b.Len() {
		next, err := content.ReplaceRange(m, b.Key(), content.NewRange(off, off+1), "")
		if err != nil {
			return snap, false
		}
		return snap.Next(next, sel), true
	}

	i := m.Index(b.Key())
	if i == m.Len()-1 {
		return snap, false
	}
	next, _, err := content.MergeWithPrevious(m, m.BlockAt(i+1).Key())
	if err != nil {
		return snap, false
	}
	return snap.Next(next, sel), true
}
