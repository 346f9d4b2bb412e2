package shortcut

import (
	"fmt"
	"slices"

	"github.com/dshills/keydraft/internal/engine/content"
)

// Table is an ordered, immutable list of rules, longest trigger first.
type Table struct {
	rules []Rule
}

// NewTable validates rules and orders them by trigger length, longest
// first. Rules of equal length keep their relative order. Two rules may
// not share a trigger.
func NewTable(rules ...Rule) (*Table, error) {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if seen[r.Trigger] {
			return nil, fmt.Errorf("%w: duplicate trigger %q", ErrInvalidRule, r.Trigger)
		}
		seen[r.Trigger] = true
	}

	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		return b.TriggerLen() - a.TriggerLen()
	})
	return &Table{rules: sorted}, nil
}

// DefaultTable returns the built-in shortcuts.
//
//	"***" underline
//	"**"  red text
//	"*"   bold
//	"#"   heading
func DefaultTable() *Table {
	t, err := NewTable(
		Rule{Trigger: "#", Consumed: 1, Command: SetBlockType(content.HeaderOne)},
		Rule{Trigger: "*", Consumed: 1, Command: ToggleInlineStyle(content.Bold)},
		Rule{Trigger: "**", Consumed: 2, Command: ToggleInlineStyle(content.Red)},
		Rule{Trigger: "***", Consumed: 3, Command: ToggleInlineStyle(content.Underline)},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Rules returns the rules in match order.
func (t *Table) Rules() []Rule {
	return slices.Clone(t.rules)
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}
