package style

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keydraft/internal/engine/content"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want tcell.Color
		err  bool
	}{
		{"", tcell.ColorDefault, false},
		{"default", tcell.ColorDefault, false},
		{"#ff0000", tcell.NewRGBColor(255, 0, 0), false},
		{"#0F0", tcell.NewRGBColor(0, 255, 0), false},
		{"red", tcell.ColorRed, false},
		{"DarkSlateGray", tcell.ColorDarkSlateGray, false},
		{"#12345", tcell.ColorDefault, true},
		{"#gggggg", tcell.ColorDefault, true},
		{"ultraviolet", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.err {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("expected ErrInvalidColor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBlend(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)
	if got := Blend(black, white, 0); got != black {
		t.Errorf("t=0 should give the first color, got %v", got)
	}
	if got := Blend(black, white, 1); got != white {
		t.Errorf("t=1 should give the second color, got %v", got)
	}
	r, _, _ := Blend(black, white, 0.5).RGB()
	if r <= 0 || r >= 255 {
		t.Errorf("expected a mid grey, got red channel %d", r)
	}
}

func TestResolve(t *testing.T) {
	tb := DefaultTable()

	fg, _, attrs := tb.Resolve([]content.InlineStyle{content.Red}, content.HeaderOne).Decompose()
	if fg != Red {
		t.Errorf("expected red foreground, got %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("header text should stay bold under RED")
	}

	_, bg, _ := tb.Resolve([]content.InlineStyle{content.Code}, content.Unstyled).Decompose()
	if bg != CodeBackground {
		t.Errorf("expected code background, got %v", bg)
	}

	if got := tb.Resolve(nil, content.Unstyled); got != tcell.StyleDefault {
		t.Errorf("plain text should use the base style, got %v", got)
	}
	if got := tb.Resolve([]content.InlineStyle{"SPARKLE"}, content.BlockType("callout")); got != tcell.StyleDefault {
		t.Errorf("unknown names should render plainly, got %v", got)
	}
}

func TestGutters(t *testing.T) {
	tb := DefaultTable()
	if got := tb.Gutter(content.Blockquote); got != QuoteGutter {
		t.Errorf("expected %q, got %q", QuoteGutter, got)
	}
	if got := tb.Gutter(content.Unstyled); got != "" {
		t.Errorf("expected no gutter, got %q", got)
	}
}

func TestApplySpecs(t *testing.T) {
	base := DefaultTable()
	tb, err := base.ApplySpecs(map[string]Spec{
		"RED":        {Foreground: "#800000"},
		"HIGHLIGHT":  {Background: "yellow"},
		"blockquote": {Italic: true},
		"callout":    {Bold: true, Gutter: "! "},
	})
	if err != nil {
		t.Fatalf("ApplySpecs: %v", err)
	}

	if a, _ := tb.Inline(content.Red); a.Foreground != tcell.NewRGBColor(128, 0, 0) {
		t.Errorf("RED not overridden: %v", a.Foreground)
	}
	if _, ok := tb.Inline("HIGHLIGHT"); !ok {
		t.Error("custom inline style not registered")
	}
	if got := tb.Gutter(content.Blockquote); got != QuoteGutter {
		t.Errorf("blockquote should keep its gutter, got %q", got)
	}
	if got := tb.Gutter("callout"); got != "! " {
		t.Errorf("expected callout gutter, got %q", got)
	}
	if a, _ := base.Inline(content.Red); a.Foreground != Red {
		t.Error("ApplySpecs must not modify the receiver")
	}

	if _, err := base.ApplySpecs(map[string]Spec{"RED": {Foreground: "nope"}}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}
