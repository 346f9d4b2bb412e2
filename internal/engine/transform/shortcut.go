package transform

import (
	"slices"

	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/engine/selection"
	"github.com/dshills/keydraft/internal/engine/snapshot"
	"github.com/dshills/keydraft/internal/input/key"
	"github.com/dshills/keydraft/internal/shortcut"
)

// DetectIn runs d against the block holding the caret of snap. A range
// selection never fires a shortcut.
func DetectIn(d *shortcut.Detector, snap snapshot.Snapshot, ev key.Event) (shortcut.Match, bool) {
	sel := snap.Selection()
	if !sel.IsCollapsed() {
		return shortcut.Match{}, false
	}
	b, ok := snap.FocusBlock()
	if !ok {
		return shortcut.Match{}, false
	}
	return d.Detect(ev, b.Text(), sel.FocusOffset)
}

// ApplyShortcut deletes the trigger of match from the block holding the
// caret and applies the rule's command. It works on the snapshot as it was
// before the space was typed; the space itself is swallowed.
//
// The deleted span is [cursor-consumed, cursor) clamped to the start of the
// block, so a rule never reaches into the previous block.
func ApplyShortcut(snap snapshot.Snapshot, match shortcut.Match) (snapshot.Snapshot, bool) {
	sel := snap.Selection()
	if !sel.IsCollapsed() || sel.FocusOffset != match.Cursor {
		return snap, false
	}
	if err := match.Rule.Command.Validate(); err != nil {
		return snap, false
	}

	start := max(match.Cursor-match.Rule.ConsumedChars(), 0)
	span := sel.Merge(selection.AnchorOffset(start))
	r, _ := span.BlockRange()

	m, err := content.ReplaceRange(snap.Content(), sel.FocusKey, r, "")
	if err != nil {
		return snap, false
	}
	caret := selection.Collapsed(sel.FocusKey, start)

	cmd := match.Rule.Command
	switch cmd.Kind {
	case shortcut.CommandBlock:
		m, err = content.SetBlockType(m, sel.FocusKey, cmd.BlockType)
		if err != nil {
			return snap, false
		}
		return snap.Next(m, caret), true

	case shortcut.CommandInline:
		base, ok := snap.InlineOverride()
		if !ok {
			base = snapshot.InheritedStyles(m, caret)
		}
		return snap.Next(m, caret).WithInlineOverride(toggleStyle(base, cmd.Style)), true
	}
	return snap, false
}

func toggleStyle(set []content.InlineStyle, style content.InlineStyle) []content.InlineStyle {
	if i := slices.Index(set, style); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), style)
}
