package transform

import (
	"github.com/dshills/keydraft/internal/engine/selection"
	"github.com/dshills/keydraft/internal/engine/snapshot"
)

// Caret moves. With extend set the anchor stays put and only the focus
// moves, which is how Shift+arrow grows a selection. Every move clears the
// inline override.

// MoveLeft moves the focus one code point back, wrapping to the end of the
// previous block. Without extend, a range selection collapses to its start.
func MoveLeft(snap snapshot.Snapshot, extend bool) (snapshot.Snapshot, bool) {
	m, sel := snap.Content(), snap.Selection()
	if !extend && !sel.IsCollapsed() {
		k, off := sel.Start(m)
		return moveFocus(snap, k, off, false)
	}
	k, off := sel.FocusKey, sel.FocusOffset
	if off > 0 {
		return moveFocus(snap, k, off-1, extend)
	}
	if i := m.Index(k); i > 0 {
		prev := m.BlockAt(i - 1)
		return moveFocus(snap, prev.Key(), prev.Len(), extend)
	}
	return snap, false
}

// MoveRight moves the focus one code point forward, wrapping to the start
// of the next block. Without extend, a range selection collapses to its end.
func MoveRight(snap snapshot.Snapshot, extend bool) (snapshot.Snapshot, bool) {
	m, sel := snap.Content(), snap.Selection()
	if !extend && !sel.IsCollapsed() {
		k, off := sel.End(m)
		return moveFocus(snap, k, off, false)
	}
	b, ok := m.Block(sel.FocusKey)
	if !ok {
		return snap, false
	}
	if sel.FocusOffset < b.Len() {
		return moveFocus(snap, b.Key(), sel.FocusOffset+1, extend)
	}
	if i := m.Index(b.Key()); i < m.Len()-1 {
		return moveFocus(snap, m.BlockAt(i+1).Key(), 0, extend)
	}
	return snap, false
}

// MoveUp moves the focus to the same offset in the previous block, clamped
// to its length. In the first block it moves to offset zero.
func MoveUp(snap snapshot.Snapshot, extend bool) (snapshot.Snapshot, bool) {
	m, sel := snap.Content(), snap.Selection()
	i := m.Index(sel.FocusKey)
	if i < 0 {
		return snap, false
	}
	if i == 0 {
		return moveFocus(snap, sel.FocusKey, 0, extend)
	}
	prev := m.BlockAt(i - 1)
	return moveFocus(snap, prev.Key(), min(sel.FocusOffset, prev.Len()), extend)
}

// MoveDown moves the focus to the same offset in the next block, clamped
// to its length. In the last block it moves to the end.
func MoveDown(snap snapshot.Snapshot, extend bool) (snapshot.Snapshot, bool) {
	m, sel := snap.Content(), snap.Selection()
	i := m.Index(sel.FocusKey)
	if i < 0 {
		return snap, false
	}
	if i == m.Len()-1 {
		return moveFocus(snap, sel.FocusKey, m.BlockAt(i).Len(), extend)
	}
	next := m.BlockAt(i + 1)
	return moveFocus(snap, next.Key(), min(sel.FocusOffset, next.Len()), extend)
}

// MoveHome moves the focus to the start of its block.
func MoveHome(snap snapshot.Snapshot, extend bool) (snapshot.Snapshot, bool) {
	return moveFocus(snap, snap.Selection().FocusKey, 0, extend)
}

// MoveEnd moves the focus to the end of its block.
func MoveEnd(snap snapshot.Snapshot, extend bool) (snapshot.Snapshot, bool) {
	b, ok := snap.FocusBlock()
	if !ok {
		return snap, false
	}
	return moveFocus(snap, b.Key(), b.Len(), extend)
}

func moveFocus(snap snapshot.Snapshot, key string, offset int, extend bool) (snapshot.Snapshot, bool) {
	sel := snap.Selection()
	var next selection.Selection
	if extend {
		next = sel.Extend(key, offset)
	} else {
		next = selection.Collapsed(key, offset)
	}
	if next == sel {
		return snap, false
	}
	if err := next.Validate(snap.Content()); err != nil {
		return snap, false
	}
	return snap.Next(snap.Content(), next), true
}
