package shortcut

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dshills/keydraft/internal/engine/content"
)

// ErrInvalidRule indicates a rule that cannot be placed in a table.
var ErrInvalidRule = errors.New("invalid shortcut rule")

// CommandKind tells whether a command changes a block or an inline style.
type CommandKind int

const (
	// CommandNone is the zero command; it is never valid in a rule.
	CommandNone CommandKind = iota

	// CommandBlock sets the type of the active block.
	CommandBlock

	// CommandInline toggles an inline style for subsequently typed text.
	CommandInline
)

// String returns the command kind name.
func (k CommandKind) String() string {
	switch k {
	case CommandBlock:
		return "block"
	case CommandInline:
		return "inline"
	default:
		return "none"
	}
}

// Command is a formatting change applied when a rule fires.
type Command struct {
	Kind      CommandKind
	BlockType content.BlockType
	Style     content.InlineStyle
}

// SetBlockType returns a command that sets the active block's type.
func SetBlockType(t content.BlockType) Command {
	return Command{Kind: CommandBlock, BlockType: t}
}

// ToggleInlineStyle returns a command that toggles an inline style.
func ToggleInlineStyle(s content.InlineStyle) Command {
	return Command{Kind: CommandInline, Style: s}
}

// String returns a human-readable description of the command.
func (c Command) String() string {
	switch c.Kind {
	case CommandBlock:
		return "block:" + string(c.BlockType)
	case CommandInline:
		return "inline:" + string(c.Style)
	default:
		return "none"
	}
}

// Validate checks that exactly one target is set for the command kind.
func (c Command) Validate() error {
	switch c.Kind {
	case CommandBlock:
		if c.BlockType == "" || c.Style != "" {
			return fmt.Errorf("%w: block command needs a block type only", ErrInvalidRule)
		}
	case CommandInline:
		if c.Style == "" || c.BlockType != "" {
			return fmt.Errorf("%w: inline command needs a style only", ErrInvalidRule)
		}
	default:
		return fmt.Errorf("%w: missing command", ErrInvalidRule)
	}
	return nil
}

// Rule binds a trigger sequence to a command.
type Rule struct {
	// Trigger is the literal text typed before the space.
	Trigger string

	// Consumed is the number of code points deleted, counted backward from
	// the caret, when the rule fires. Zero means the trigger length.
	Consumed int

	// Command is applied after the consumed text is deleted.
	Command Command
}

// TriggerLen returns the trigger length in code points.
func (r Rule) TriggerLen() int {
	return utf8.RuneCountInString(r.Trigger)
}

// ConsumedChars returns the number of code points removed when the rule fires.
func (r Rule) ConsumedChars() int {
	if r.Consumed == 0 {
		return r.TriggerLen()
	}
	return r.Consumed
}

// Validate checks the rule in isolation.
func (r Rule) Validate() error {
	if r.Trigger == "" {
		return fmt.Errorf("%w: empty trigger", ErrInvalidRule)
	}
	if r.Consumed < 0 {
		return fmt.Errorf("%w: trigger %q consumes %d characters", ErrInvalidRule, r.Trigger, r.Consumed)
	}
	if err := r.Command.Validate(); err != nil {
		return fmt.Errorf("trigger %q: %w", r.Trigger, err)
	}
	return nil
}

// String returns a human-readable description of the rule.
func (r Rule) String() string {
	return fmt.Sprintf("%q -> %s (consumes %d)", r.Trigger, r.Command, r.ConsumedChars())
}
