package transform

import (
	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/engine/snapshot"
)

type blockSpan struct {
	key string
	r   content.Range
}

// selectedSpans returns the selected part of every block the selection
// touches, in document order.
func selectedSpans(snap snapshot.Snapshot) ([]blockSpan, error) {
	m, sel := snap.Content(), snap.Selection()
	if err := sel.Validate(m); err != nil {
		return nil, err
	}
	sk, so := sel.Start(m)
	ek, eo := sel.End(m)
	si, ei := m.Index(sk), m.Index(ek)

	spans := make([]blockSpan, 0, ei-si+1)
	for i := si; i <= ei; i++ {
		b := m.BlockAt(i)
		r := content.NewRange(0, b.Len())
		if i == si {
			r.Start = so
		}
		if i == ei {
			r.End = eo
		}
		spans = append(spans, blockSpan{key: b.Key(), r: r})
	}
	return spans, nil
}

// ToggleBlockType sets typ on every block the selection touches. When all
// of them already have typ they are reset to unstyled instead. The inline
// override survives the change.
func ToggleBlockType(snap snapshot.Snapshot, typ content.BlockType) (snapshot.Snapshot, bool) {
	spans, err := selectedSpans(snap)
	if err != nil {
		return snap, false
	}

	m := snap.Content()
	target := content.Unstyled
	for _, sp := range spans {
		if b, _ := m.Block(sp.key); b.Type() != typ {
			target = typ
			break
		}
	}

	next := m
	for _, sp := range spans {
		if next, err = content.SetBlockType(next, sp.key, target); err != nil {
			return snap, false
		}
	}
	if next == m {
		return snap, false
	}

	out := snap.Next(next, snap.Selection())
	if override, ok := snap.InlineOverride(); ok {
		out = out.WithInlineOverride(override)
	}
	return out, true
}

// ToggleInlineStyle toggles style. For a caret it flips the style in the
// inline override so it applies to what is typed next. For a range it
// removes the style when every selected code point carries it and applies
// it to the whole range otherwise.
func ToggleInlineStyle(snap snapshot.Snapshot, style content.InlineStyle) (snapshot.Snapshot, bool) {
	if style == "" {
		return snap, false
	}
	sel := snap.Selection()
	if sel.IsCollapsed() {
		if _, ok := snap.FocusBlock(); !ok {
			return snap, false
		}
		styles := toggleStyle(snap.CurrentInlineStyles(), style)
		return snap.Next(snap.Content(), sel).WithInlineOverride(styles), true
	}

	spans, err := selectedSpans(snap)
	if err != nil {
		return snap, false
	}

	m := snap.Content()
	covered, found := true, false
	for _, sp := range spans {
		if sp.r.IsEmpty() {
			continue
		}
		found = true
		if b, _ := m.Block(sp.key); !b.HasStyleOver(sp.r, style) {
			covered = false
		}
	}
	if !found {
		return snap, false
	}

	next := m
	for _, sp := range spans {
		if next, err = content.ApplyInlineStyle(next, sp.key, sp.r, style, !covered); err != nil {
			return snap, false
		}
	}
	return snap.Next(next, sel), true
}
