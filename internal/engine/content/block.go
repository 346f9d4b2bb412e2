package content

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Block is an immutable paragraph-like unit of text with one structural
// type and its own inline style ranges.
type Block struct {
	key    string
	typ    BlockType
	text   string
	length int
	styles []StyleRange
}

// NewBlock creates a block after validating the text and every style range
// against it. Overlapping or adjacent ranges of the same style are merged.
func NewBlock(key string, typ BlockType, text string, styles ...StyleRange) (*Block, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: block %q", ErrInvalidText, key)
	}
	n := utf8.RuneCountInString(text)
	for _, s := range styles {
		if s.Style == "" {
			return nil, fmt.Errorf("%w: empty style name at %s", ErrInvalidRange, s.Range())
		}
		if s.Start < 0 || s.Start >= s.End || s.End > n {
			return nil, fmt.Errorf("%w: style %s outside text of length %d", ErrInvalidRange, s, n)
		}
	}
	if typ == "" {
		typ = Unstyled
	}
	return &Block{
		key:    key,
		typ:    typ,
		text:   text,
		length: n,
		styles: normalizeStyles(styles),
	}, nil
}

// newBlock builds a block from ranges already known to be in bounds.
func newBlock(key string, typ BlockType, text string, styles []StyleRange) *Block {
	return &Block{
		key:    key,
		typ:    typ,
		text:   text,
		length: utf8.RuneCountInString(text),
		styles: normalizeStyles(styles),
	}
}

// Key returns the block's stable identity.
func (b *Block) Key() string {
	return b.key
}

// Type returns the block's structural type.
func (b *Block) Type() BlockType {
	return b.typ
}

// Text returns the block's text.
func (b *Block) Text() string {
	return b.text
}

// Len returns the number of code points in the block's text.
func (b *Block) Len() int {
	return b.length
}

// IsEmpty returns true if the block has no text.
func (b *Block) IsEmpty() bool {
	return b.length == 0
}

// Styles returns a copy of the block's normalized style ranges.
func (b *Block) Styles() []StyleRange {
	return slices.Clone(b.styles)
}

// StylesAt returns the styles applied to the code point at offset.
func (b *Block) StylesAt(offset int) []InlineStyle {
	return stylesAt(b.styles, offset)
}

// HasStyleOver reports whether every code point in r carries style.
// An empty range never carries a style.
func (b *Block) HasStyleOver(r Range, style InlineStyle) bool {
	return covers(b.styles, style, r)
}

// Slice returns the text in r. It panics if r is not within the block,
// like slicing a string does.
func (b *Block) Slice(r Range) string {
	runes := []rune(b.text)
	return string(runes[r.Start:r.End])
}

// Equal reports whether two blocks are structurally identical.
func (b *Block) Equal(other *Block) bool {
	if b == other {
		return true
	}
	if b == nil || other == nil {
		return false
	}
	return b.key == other.key &&
		b.typ == other.typ &&
		b.text == other.text &&
		slices.Equal(b.styles, other.styles)
}

// String returns a debugging representation of the block.
func (b *Block) String() string {
	return fmt.Sprintf("%s(%s %q %v)", b.key, b.typ, b.text, b.styles)
}

func (b *Block) withType(typ BlockType) *Block {
	nb := *b
	nb.typ = typ
	return &nb
}
