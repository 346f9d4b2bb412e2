package style

import (
	"fmt"
	"maps"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keydraft/internal/engine/content"
)

// Attributes is the terminal presentation of one style.
type Attributes struct {
	Foreground tcell.Color
	Background tcell.Color
	Bold       bool
	Italic     bool
	Underline  bool
	Dim        bool
}

// Apply layers a over s. Default colors leave the color of s in place and
// set flags are added.
func (a Attributes) Apply(s tcell.Style) tcell.Style {
	if a.Foreground != tcell.ColorDefault {
		s = s.Foreground(a.Foreground)
	}
	if a.Background != tcell.ColorDefault {
		s = s.Background(a.Background)
	}
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Italic {
		s = s.Italic(true)
	}
	if a.Underline {
		s = s.Underline(true)
	}
	if a.Dim {
		s = s.Dim(true)
	}
	return s
}

// BlockAttributes is the presentation of a block type: attributes for its
// text plus a gutter drawn before every row of the block.
type BlockAttributes struct {
	Attributes
	Gutter string
}

// Spec is the textual form of a style entry, as found in configuration.
type Spec struct {
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
	Bold       bool   `toml:"bold" yaml:"bold"`
	Italic     bool   `toml:"italic" yaml:"italic"`
	Underline  bool   `toml:"underline" yaml:"underline"`
	Gutter     string `toml:"gutter" yaml:"gutter"`
}

// Attributes parses the colors of the spec.
func (s Spec) Attributes() (Attributes, error) {
	fg, err := ParseColor(s.Foreground)
	if err != nil {
		return Attributes{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := ParseColor(s.Background)
	if err != nil {
		return Attributes{}, fmt.Errorf("background: %w", err)
	}
	return Attributes{
		Foreground: fg,
		Background: bg,
		Bold:       s.Bold,
		Italic:     s.Italic,
		Underline:  s.Underline,
	}, nil
}

// Table maps style and block names to attributes. A Table is not safe for
// concurrent mutation; build it fully, then share it read-only.
type Table struct {
	base   tcell.Style
	inline map[content.InlineStyle]Attributes
	blocks map[content.BlockType]BlockAttributes
}

// NewTable returns an empty table drawing over base.
func NewTable(base tcell.Style) *Table {
	return &Table{
		base:   base,
		inline: make(map[content.InlineStyle]Attributes),
		blocks: make(map[content.BlockType]BlockAttributes),
	}
}

// Register sets the attributes of an inline style.
func (t *Table) Register(s content.InlineStyle, a Attributes) {
	t.inline[s] = a
}

// RegisterBlock sets the attributes of a block type.
func (t *Table) RegisterBlock(bt content.BlockType, a BlockAttributes) {
	t.blocks[bt] = a
}

// Inline returns the attributes of an inline style.
func (t *Table) Inline(s content.InlineStyle) (Attributes, bool) {
	a, ok := t.inline[s]
	return a, ok
}

// Block returns the attributes of a block type.
func (t *Table) Block(bt content.BlockType) (BlockAttributes, bool) {
	a, ok := t.blocks[bt]
	return a, ok
}

// Gutter returns the gutter drawn before rows of a block type.
func (t *Table) Gutter(bt content.BlockType) string {
	return t.blocks[bt].Gutter
}

// Base returns the style unstyled text is drawn with.
func (t *Table) Base() tcell.Style {
	return t.base
}

// Resolve returns the terminal style for text carrying styles inside a
// block of type bt.
func (t *Table) Resolve(styles []content.InlineStyle, bt content.BlockType) tcell.Style {
	s := t.base
	if ba, ok := t.blocks[bt]; ok {
		s = ba.Apply(s)
	}
	for _, name := range styles {
		if a, ok := t.inline[name]; ok {
			s = a.Apply(s)
		}
	}
	return s
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	return &Table{
		base:   t.base,
		inline: maps.Clone(t.inline),
		blocks: maps.Clone(t.blocks),
	}
}

// ApplySpecs registers every spec in specs on a copy of t and returns the
// copy. Upper-case names are inline styles ("RED"); other names are block
// types ("header-one"). The first bad spec aborts with an error naming it.
func (t *Table) ApplySpecs(specs map[string]Spec) (*Table, error) {
	out := t.Clone()
	for name, spec := range specs {
		attrs, err := spec.Attributes()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		if IsInlineName(name) {
			out.Register(content.InlineStyle(name), attrs)
			continue
		}
		gutter := spec.Gutter
		if gutter == "" {
			gutter = t.Gutter(content.BlockType(name))
		}
		out.RegisterBlock(content.BlockType(name), BlockAttributes{Attributes: attrs, Gutter: gutter})
	}
	return out, nil
}

// IsInlineName reports whether a style table key names an inline style.
func IsInlineName(name string) bool {
	return name != "" && name == strings.ToUpper(name)
}
