package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "#", "1"
//   - Special keys: "Enter", "Escape", "Space", "Left"
//   - With modifiers: "Ctrl+B", "Alt+1", "Shift+Left"
//   - Vim-style: "<C-b>", "<A-1>", "<S-Left>", "<CR>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var (
		parts []string
		sep   string
	)
	switch {
	case strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2:
		sep = "-"
		parts = strings.Split(spec[1:len(spec)-1], sep)
	case len([]rune(spec)) > 1 && strings.Contains(spec, "+"):
		sep = "+"
		parts = strings.Split(spec, sep)
	default:
		parts = []string{spec}
	}

	// A trailing empty part means the key itself is the separator, as in "Ctrl++".
	if n := len(parts); n > 1 && parts[n-1] == "" {
		parts = append(parts[:n-2], sep)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		if k == KeySpace {
			return Event{Key: KeyRune, Rune: ' ', Modifiers: mods}, nil
		}
		return Event{Key: k, Modifiers: mods}, nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, keyPart, spec)
	}
	return Event{Key: KeyRune, Rune: runes[0], Modifiers: mods}, nil
}

// MustParse is like Parse but panics on error. It is meant for static
// binding tables.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}
