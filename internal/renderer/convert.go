package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keydraft/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

// ConvertEvent converts a tcell key event to a key.Event.
//
// Terminals report Ctrl+letter as a control code; it becomes the lower-case
// letter with ModCtrl. Ctrl+H, Ctrl+I and Ctrl+M share codes with
// Backspace, Tab and Enter and are reported as those keys.
func ConvertEvent(ev *tcell.EventKey) key.Event {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		return withTime(key.NewRuneEvent(ev.Rune(), mods), ev)
	}
	if sk, ok := specialKeys[k]; ok {
		return withTime(key.NewSpecialEvent(sk, mods), ev)
	}
	if k == tcell.KeyCtrlSpace {
		return withTime(key.NewRuneEvent(' ', mods|key.ModCtrl), ev)
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return withTime(key.NewRuneEvent(r, mods|key.ModCtrl), ev)
	}
	return withTime(key.NewSpecialEvent(key.KeyNone, mods), ev)
}

func withTime(e key.Event, ev *tcell.EventKey) key.Event {
	e.Timestamp = ev.When()
	return e
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
