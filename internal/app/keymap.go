package app

import (
	"context"

	"github.com/dshills/keydraft/internal/engine"
	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/input/key"
)

// action runs a bound command. It reports whether the session changed.
type action func(app *Application) (bool, error)

type binding struct {
	event  key.Event
	action action
}

func toggleInline(s content.InlineStyle) action {
	return func(app *Application) (bool, error) {
		return app.ToggleInlineStyle(s), nil
	}
}

func toggleBlock(t content.BlockType) action {
	return func(app *Application) (bool, error) {
		return app.ToggleBlockType(t), nil
	}
}

func save(app *Application) (bool, error) {
	if err := app.Save(context.Background()); err != nil {
		return false, err
	}
	return true, nil
}

func quit(*Application) (bool, error) {
	return false, ErrQuit
}

// Ctrl+1 has no portable terminal encoding, so block toggles use Alt.
var bindings = []binding{
	{key.MustParse("Ctrl+B"), toggleInline(content.Bold)},
	{key.MustParse("Ctrl+I"), toggleInline(content.Italic)},
	{key.MustParse("Ctrl+U"), toggleInline(content.Underline)},
	{key.MustParse("Alt+1"), toggleBlock(content.HeaderOne)},
	{key.MustParse("Alt+2"), toggleBlock(content.HeaderTwo)},
	{key.MustParse("Alt+Q"), toggleBlock(content.Blockquote)},
	{key.MustParse("Alt+C"), toggleBlock(content.CodeBlock)},
	{key.MustParse("Ctrl+S"), save},
	{key.MustParse("Ctrl+Q"), quit},
	{key.MustParse("Escape"), quit},
}

var motions = map[key.Key]engine.Motion{
	key.KeyLeft:  engine.MotionLeft,
	key.KeyRight: engine.MotionRight,
	key.KeyUp:    engine.MotionUp,
	key.KeyDown:  engine.MotionDown,
	key.KeyHome:  engine.MotionHome,
	key.KeyEnd:   engine.MotionEnd,
}

// HandleKey applies one key event. handled reports whether the event
// changed the session. A save failure is returned as err; ErrQuit asks the
// caller to exit.
func (app *Application) HandleKey(ev key.Event) (handled bool, err error) {
	for _, b := range bindings {
		if b.event.Equals(ev) {
			return b.action(app)
		}
	}

	if ev.IsSpace() {
		before := app.engine.Revision()
		app.engine.HandleSpace()
		return app.engine.Revision() != before, nil
	}
	if ch := ev.Char(); ch != 0 {
		return app.engine.InsertText(string(ch)), nil
	}

	mods := ev.Modifiers &^ key.ModShift
	if mods != key.ModNone {
		return false, nil
	}
	if m, ok := motions[ev.Key]; ok {
		return app.engine.Move(m, ev.Modifiers.HasShift()), nil
	}
	switch ev.Key {
	case key.KeyEnter:
		return app.engine.SplitBlock(), nil
	case key.KeyBackspace:
		return app.engine.Backspace(), nil
	case key.KeyDelete:
		return app.engine.Delete(), nil
	}
	return false, nil
}
