package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor indicates a color string that cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses "#RGB", "#RRGGBB", a W3C color name such as "red" or
// "darkslategray", or "default". The empty string means default.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "", strings.EqualFold(s, "default"):
		return tcell.ColorDefault, nil
	case strings.HasPrefix(s, "#"):
		if !isHex(s[1:]) || (len(s) != 4 && len(s) != 7) {
			return tcell.ColorDefault, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		c, err := colorful.Hex(expandShortHex(s))
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return FromColorful(c), nil
	}
	if c, ok := tcell.ColorNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// FromColorful converts a colorful color to a true-color tcell color.
func FromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Blend mixes two true colors in Lab space. t=0 gives a, t=1 gives b.
func Blend(a, b tcell.Color, t float64) tcell.Color {
	return FromColorful(toColorful(a).BlendLab(toColorful(b), t))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// expandShortHex turns "#abc" into "#aabbcc"; other strings pass through.
func expandShortHex(s string) string {
	if len(s) != 4 {
		return s
	}
	var sb strings.Builder
	sb.WriteByte('#')
	for i := 1; i < 4; i++ {
		sb.WriteByte(s[i])
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return s != ""
}
