package style

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/keydraft/internal/engine/content"
)

// Default colors.
var (
	// Red is the color of the RED inline style.
	Red = tcell.NewRGBColor(255, 0, 0)

	// CodeBackground tints inline code and code blocks.
	CodeBackground = FromColorful(colorful.Hsl(0, 0, 0.22))

	// QuoteForeground is the text color of block quotes.
	QuoteForeground = FromColorful(colorful.Hsl(0, 0, 0.6))
)

// Gutters of the built-in block types.
const (
	QuoteGutter = "│ "
	CodeGutter  = "  "
)

// DefaultTable returns the built-in presentation.
func DefaultTable() *Table {
	t := NewTable(tcell.StyleDefault)

	t.Register(content.Bold, Attributes{Bold: true})
	t.Register(content.Italic, Attributes{Italic: true})
	t.Register(content.Underline, Attributes{Underline: true})
	t.Register(content.Code, Attributes{Background: CodeBackground})
	t.Register(content.Red, Attributes{Foreground: Red})

	t.RegisterBlock(content.HeaderOne, BlockAttributes{Attributes: Attributes{Bold: true, Underline: true}})
	t.RegisterBlock(content.HeaderTwo, BlockAttributes{Attributes: Attributes{Bold: true}})
	t.RegisterBlock(content.Blockquote, BlockAttributes{
		Attributes: Attributes{Italic: true, Foreground: QuoteForeground},
		Gutter:     QuoteGutter,
	})
	t.RegisterBlock(content.CodeBlock, BlockAttributes{
		Attributes: Attributes{Background: CodeBackground},
		Gutter:     CodeGutter,
	})
	return t
}
