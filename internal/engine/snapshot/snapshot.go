// Package snapshot provides immutable editor states.
//
// A Snapshot pairs a content model with a selection, an optional inline
// style override and a revision id. Every committed change produces a new
// Snapshot with a higher revision; older snapshots stay valid and can be
// retained by an external undo stack.
package snapshot

import (
	"slices"

	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/engine/selection"
)

// RevisionID identifies a snapshot within one editing session.
// Revisions increase by one on every commit.
type RevisionID uint64

// Snapshot is an immutable editor state.
type Snapshot struct {
	content     *content.Model
	sel         selection.Selection
	override    []content.InlineStyle
	hasOverride bool
	revision    RevisionID
}

// New creates the initial snapshot of a session with revision zero.
func New(m *content.Model, sel selection.Selection) Snapshot {
	return Snapshot{content: m, sel: sel}
}

// Empty returns the initial snapshot of an empty document with the caret
// at its start.
func Empty() Snapshot {
	m := content.Empty()
	return New(m, selection.AtStart(m))
}

// Content returns the content model.
func (s Snapshot) Content() *content.Model {
	return s.content
}

// Selection returns the selection.
func (s Snapshot) Selection() selection.Selection {
	return s.sel
}

// Revision returns the revision id.
func (s Snapshot) Revision() RevisionID {
	return s.revision
}

// InlineOverride returns the styles that the next typed text will carry.
// The boolean is false when no override is set and typed text inherits its
// styles from the surrounding text.
func (s Snapshot) InlineOverride() ([]content.InlineStyle, bool) {
	return slices.Clone(s.override), s.hasOverride
}

// Next returns the successor of s holding m and sel. The inline override
// is cleared.
func (s Snapshot) Next(m *content.Model, sel selection.Selection) Snapshot {
	return Snapshot{content: m, sel: sel, revision: s.revision + 1}
}

// WithInlineOverride returns s carrying a different inline override. The
// revision is unchanged, so it is meant to be chained after Next.
func (s Snapshot) WithInlineOverride(styles []content.InlineStyle) Snapshot {
	out := s
	out.override = sortedStyles(styles)
	out.hasOverride = true
	return out
}

// FocusBlock returns the block holding the caret.
func (s Snapshot) FocusBlock() (*content.Block, bool) {
	return s.content.Block(s.sel.FocusKey)
}

// CurrentInlineStyles returns the styles in effect at the selection: the
// override if one is set, otherwise the styles inherited from the text.
func (s Snapshot) CurrentInlineStyles() []content.InlineStyle {
	if s.hasOverride {
		return slices.Clone(s.override)
	}
	return InheritedStyles(s.content, s.sel)
}

// InheritedStyles returns the styles new text at sel would pick up.
// For a caret this is the style of the code point before it; at offset zero
// it is the style of the first code point, and in an empty block the style
// at the end of the nearest non-empty block above. For a range it is the
// style at the range start.
func InheritedStyles(m *content.Model, sel selection.Selection) []content.InlineStyle {
	if !sel.IsCollapsed() {
		key, off := sel.Start(m)
		b, ok := m.Block(key)
		if !ok {
			return nil
		}
		if off == b.Len() {
			return styleBefore(m, key, off)
		}
		return b.StylesAt(off)
	}
	return styleBefore(m, sel.FocusKey, sel.FocusOffset)
}

func styleBefore(m *content.Model, key string, offset int) []content.InlineStyle {
	b, ok := m.Block(key)
	if !ok {
		return nil
	}
	if offset > 0 {
		return b.StylesAt(offset - 1)
	}
	if b.Len() > 0 {
		return b.StylesAt(0)
	}
	for i := m.Index(key) - 1; i >= 0; i-- {
		if prev := m.BlockAt(i); prev.Len() > 0 {
			return prev.StylesAt(prev.Len() - 1)
		}
	}
	return nil
}

func sortedStyles(styles []content.InlineStyle) []content.InlineStyle {
	out := make([]content.InlineStyle, 0, len(styles))
	for _, st := range styles {
		if !slices.Contains(out, st) {
			out = append(out, st)
		}
	}
	slices.Sort(out)
	return out
}
