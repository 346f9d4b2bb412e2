package content

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// ReplaceRange replaces the text in r of the block identified by key with
// newText. Style ranges after the edit shift by the change in length; see
// remapStyles for what happens to ranges touching the edit.
func ReplaceRange(m *Model, key string, r Range, newText string) (*Model, error) {
	i, b, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	if !r.Within(b.length) {
		return nil, fmt.Errorf("%w: %s in block %q of length %d", ErrInvalidRange, r, key, b.length)
	}
	if !utf8.ValidString(newText) {
		return nil, fmt.Errorf("%w: inserted into block %q", ErrInvalidText, key)
	}
	return m.replaceBlock(i, replaceInBlock(b, r, newText)), nil
}

// ReplaceRangeStyled replaces the text in r like ReplaceRange and then makes
// styles the exact style set of the inserted text.
func ReplaceRangeStyled(m *Model, key string, r Range, newText string, styles []InlineStyle) (*Model, error) {
	i, b, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	if !r.Within(b.length) {
		return nil, fmt.Errorf("%w: %s in block %q of length %d", ErrInvalidRange, r, key, b.length)
	}
	if !utf8.ValidString(newText) {
		return nil, fmt.Errorf("%w: inserted into block %q", ErrInvalidText, key)
	}

	nb := replaceInBlock(b, r, newText)
	span := Range{Start: r.Start, End: r.Start + utf8.RuneCountInString(newText)}
	if !span.IsEmpty() {
		rs := nb.styles
		for _, s := range nb.styles {
			if !slices.Contains(styles, s.Style) {
				rs = removeStyle(rs, s.Style, span)
			}
		}
		for _, s := range styles {
			rs = addStyle(rs, s, span)
		}
		nb = newBlock(nb.key, nb.typ, nb.text, rs)
	}
	return m.replaceBlock(i, nb), nil
}

func replaceInBlock(b *Block, r Range, newText string) *Block {
	runes := []rune(b.text)
	text := string(runes[:r.Start]) + newText + string(runes[r.End:])
	styles := remapStyles(b.styles, r, utf8.RuneCountInString(newText))
	return newBlock(b.key, b.typ, text, styles)
}

// SetBlockType changes the structural type of a block. Text and styles are
// unaffected.
func SetBlockType(m *Model, key string, typ BlockType) (*Model, error) {
	i, b, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		typ = Unstyled
	}
	if b.typ == typ {
		return m, nil
	}
	return m.replaceBlock(i, b.withType(typ)), nil
}

// ToggleInlineStyle removes style from r if every code point in r already
// carries it, and applies it to all of r otherwise. An empty range leaves
// the model unchanged.
func ToggleInlineStyle(m *Model, key string, r Range, style InlineStyle) (*Model, error) {
	i, b, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	if !r.Within(b.length) {
		return nil, fmt.Errorf("%w: %s in block %q of length %d", ErrInvalidRange, r, key, b.length)
	}
	if style == "" {
		return nil, fmt.Errorf("%w: empty style name", ErrInvalidRange)
	}
	if r.IsEmpty() {
		return m, nil
	}

	var styles []StyleRange
	if covers(b.styles, style, r) {
		styles = removeStyle(b.styles, style, r)
	} else {
		styles = addStyle(b.styles, style, r)
	}
	return m.replaceBlock(i, newBlock(b.key, b.typ, b.text, styles)), nil
}

// ApplyInlineStyle sets or clears style over r without toggling.
func ApplyInlineStyle(m *Model, key string, r Range, style InlineStyle, on bool) (*Model, error) {
	i, b, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	if !r.Within(b.length) {
		return nil, fmt.Errorf("%w: %s in block %q of length %d", ErrInvalidRange, r, key, b.length)
	}
	if r.IsEmpty() {
		return m, nil
	}
	var styles []StyleRange
	if on {
		styles = addStyle(b.styles, style, r)
	} else {
		styles = removeStyle(b.styles, style, r)
	}
	return m.replaceBlock(i, newBlock(b.key, b.typ, b.text, styles)), nil
}

// SplitBlock splits a block at offset. The head keeps the key and type of
// the original block; the tail becomes a new block keyed newKey, or a fresh
// key when newKey is empty or taken.
//
// Splitting at the very end of a non-unstyled block starts an unstyled
// block, so pressing Enter after a heading continues with a paragraph.
func SplitBlock(m *Model, key string, offset int, newKey string) (*Model, error) {
	i, b, err := m.lookup(key)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset > b.length {
		return nil, fmt.Errorf("%w: offset %d in block %q of length %d", ErrInvalidRange, offset, key, b.length)
	}

	runes := []rune(b.text)
	head := newBlock(b.key, b.typ, string(runes[:offset]), clipStyles(b.styles, Range{0, offset}))

	tailType := b.typ
	if offset == b.length {
		tailType = Unstyled
	}
	tail := newBlock(m.freshKey(newKey), tailType, string(runes[offset:]), clipStyles(b.styles, Range{offset, b.length}))

	return m.spliceBlocks(i, i+1, head, tail), nil
}

// MergeWithPrevious appends the block identified by key to the block before
// it and removes it. The merged block keeps the previous block's key and
// type. The returned offset is where the two texts meet.
func MergeWithPrevious(m *Model, key string) (*Model, int, error) {
	i, b, err := m.lookup(key)
	if err != nil {
		return nil, 0, err
	}
	if i == 0 {
		return nil, 0, fmt.Errorf("%w: block %q has no previous block", ErrInvalidRange, key)
	}
	prev := m.blocks[i-1]
	styles := append(slices.Clone(prev.styles), shiftStyles(b.styles, prev.length)...)
	merged := newBlock(prev.key, prev.typ, prev.text+b.text, styles)
	return m.spliceBlocks(i-1, i+1, merged), prev.length, nil
}

// DeleteSpan removes the text between (startKey, startOffset) and
// (endKey, endOffset), which must be in document order. When the span
// crosses blocks, the first block absorbs what remains of the last one and
// the blocks in between are removed.
func DeleteSpan(m *Model, startKey string, startOffset int, endKey string, endOffset int) (*Model, error) {
	si, sb, err := m.lookup(startKey)
	if err != nil {
		return nil, err
	}
	ei, eb, err := m.lookup(endKey)
	if err != nil {
		return nil, err
	}
	if si == ei {
		return ReplaceRange(m, startKey, Range{Start: startOffset, End: endOffset}, "")
	}
	if si > ei {
		return nil, fmt.Errorf("%w: block %q precedes %q", ErrInvalidRange, endKey, startKey)
	}
	if startOffset < 0 || startOffset > sb.length {
		return nil, fmt.Errorf("%w: offset %d in block %q of length %d", ErrInvalidRange, startOffset, startKey, sb.length)
	}
	if endOffset < 0 || endOffset > eb.length {
		return nil, fmt.Errorf("%w: offset %d in block %q of length %d", ErrInvalidRange, endOffset, endKey, eb.length)
	}

	head := []rune(sb.text)[:startOffset]
	tail := []rune(eb.text)[endOffset:]
	styles := clipStyles(sb.styles, Range{0, startOffset})
	styles = append(styles, shiftStyles(clipStyles(eb.styles, Range{endOffset, eb.length}), startOffset)...)
	merged := newBlock(sb.key, sb.typ, string(head)+string(tail), styles)

	return m.spliceBlocks(si, ei+1, merged), nil
}
