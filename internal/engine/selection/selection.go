package selection

import (
	"fmt"

	"github.com/dshills/keydraft/internal/engine/content"
)

// Selection represents a range of selected text, possibly spanning blocks.
// Anchor is where the selection started; Focus is where typing occurs.
type Selection struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int
}

// New creates a selection from anchor to focus.
func New(anchorKey string, anchorOffset int, focusKey string, focusOffset int) Selection {
	return Selection{
		AnchorKey:    anchorKey,
		AnchorOffset: anchorOffset,
		FocusKey:     focusKey,
		FocusOffset:  focusOffset,
	}
}

// Collapsed creates a caret with no extent.
func Collapsed(key string, offset int) Selection {
	return Selection{AnchorKey: key, AnchorOffset: offset, FocusKey: key, FocusOffset: offset}
}

// AtStart returns a caret at the beginning of the first block of m.
func AtStart(m *content.Model) Selection {
	return Collapsed(m.First().Key(), 0)
}

// AtEnd returns a caret at the end of the last block of m.
func AtEnd(m *content.Model) Selection {
	last := m.Last()
	return Collapsed(last.Key(), last.Len())
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("%s:%d", s.FocusKey, s.FocusOffset)
	}
	return fmt.Sprintf("%s:%d->%s:%d", s.AnchorKey, s.AnchorOffset, s.FocusKey, s.FocusOffset)
}

// IsCollapsed returns true if the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// InSingleBlock returns true if anchor and focus are in the same block.
func (s Selection) InSingleBlock() bool {
	return s.AnchorKey == s.FocusKey
}

// Collapse collapses the selection to a caret at the focus.
func (s Selection) Collapse() Selection {
	return Collapsed(s.FocusKey, s.FocusOffset)
}

// MoveTo returns a caret at the given position.
func (s Selection) MoveTo(key string, offset int) Selection {
	return Collapsed(key, offset)
}

// Extend keeps the anchor and moves the focus to the given position.
func (s Selection) Extend(key string, offset int) Selection {
	return Selection{AnchorKey: s.AnchorKey, AnchorOffset: s.AnchorOffset, FocusKey: key, FocusOffset: offset}
}

// IsBackward returns true if the focus comes before the anchor in m.
func (s Selection) IsBackward(m *content.Model) bool {
	ai, fi := m.Index(s.AnchorKey), m.Index(s.FocusKey)
	if ai != fi {
		return fi < ai
	}
	return s.FocusOffset < s.AnchorOffset
}

// Start returns the position that comes first in document order.
func (s Selection) Start(m *content.Model) (string, int) {
	if s.IsBackward(m) {
		return s.FocusKey, s.FocusOffset
	}
	return s.AnchorKey, s.AnchorOffset
}

// End returns the position that comes last in document order.
func (s Selection) End(m *content.Model) (string, int) {
	if s.IsBackward(m) {
		return s.AnchorKey, s.AnchorOffset
	}
	return s.FocusKey, s.FocusOffset
}

// Normalize returns a forward selection (anchor before focus).
func (s Selection) Normalize(m *content.Model) Selection {
	if !s.IsBackward(m) {
		return s
	}
	return Selection{AnchorKey: s.FocusKey, AnchorOffset: s.FocusOffset, FocusKey: s.AnchorKey, FocusOffset: s.AnchorOffset}
}

// BlockRange returns the offsets of a single-block selection as a range.
// The boolean is false when the selection spans blocks.
func (s Selection) BlockRange() (content.Range, bool) {
	if !s.InSingleBlock() {
		return content.Range{}, false
	}
	if s.AnchorOffset <= s.FocusOffset {
		return content.Range{Start: s.AnchorOffset, End: s.FocusOffset}, true
	}
	return content.Range{Start: s.FocusOffset, End: s.AnchorOffset}, true
}

// Validate checks that both endpoints name blocks of m and that the offsets
// fall within [0, len(text)] of their block.
func (s Selection) Validate(m *content.Model) error {
	for _, p := range []struct {
		key    string
		offset int
	}{{s.AnchorKey, s.AnchorOffset}, {s.FocusKey, s.FocusOffset}} {
		b, ok := m.Block(p.key)
		if !ok {
			return fmt.Errorf("%w: %q", content.ErrUnknownBlock, p.key)
		}
		if p.offset < 0 || p.offset > b.Len() {
			return fmt.Errorf("%w: offset %d in block %q of length %d", content.ErrInvalidRange, p.offset, p.key, b.Len())
		}
	}
	return nil
}
