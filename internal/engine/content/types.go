package content

// BlockType is the structural type of a block.
// The set below is what the editor knows how to present; other values are
// carried through the model unchanged.
type BlockType string

// Known block types.
const (
	Unstyled   BlockType = "unstyled"
	HeaderOne  BlockType = "header-one"
	HeaderTwo  BlockType = "header-two"
	Blockquote BlockType = "blockquote"
	CodeBlock  BlockType = "code-block"
)

// IsKnown returns true if t is one of the predefined block types.
func (t BlockType) IsKnown() bool {
	switch t {
	case Unstyled, HeaderOne, HeaderTwo, Blockquote, CodeBlock:
		return true
	}
	return false
}

// String returns the block type tag.
func (t BlockType) String() string {
	return string(t)
}

// InlineStyle names a character-level style.
type InlineStyle string

// Known inline styles.
const (
	Bold      InlineStyle = "BOLD"
	Italic    InlineStyle = "ITALIC"
	Underline InlineStyle = "UNDERLINE"
	Code      InlineStyle = "CODE"
	Red       InlineStyle = "RED"
)

// IsKnown returns true if s is one of the predefined inline styles.
func (s InlineStyle) IsKnown() bool {
	switch s {
	case Bold, Italic, Underline, Code, Red:
		return true
	}
	return false
}

// String returns the style name.
func (s InlineStyle) String() string {
	return string(s)
}
