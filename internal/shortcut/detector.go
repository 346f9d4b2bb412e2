package shortcut

import (
	"strings"

	"github.com/dshills/keydraft/internal/input/key"
)

// Match is a rule that fired, with the caret offset it fired at.
type Match struct {
	Rule   Rule
	Cursor int
}

// Detector recognizes shortcut triggers on space key presses.
type Detector struct {
	table *Table
}

// NewDetector creates a detector over table. A nil table means the
// default table.
func NewDetector(table *Table) *Detector {
	if table == nil {
		table = DefaultTable()
	}
	return &Detector{table: table}
}

// Table returns the rule table the detector matches against.
func (d *Detector) Table() *Table {
	return d.table
}

// Detect reports the rule that fires for ev, given the text of the active
// block and the caret offset in code points. Only the space key can fire a
// rule; every other event returns false.
func (d *Detector) Detect(ev key.Event, blockText string, cursor int) (Match, bool) {
	if !ev.IsSpace() {
		return Match{}, false
	}
	return d.table.Match(blockText, cursor)
}

// Match returns the first rule, in table order, whose trigger is the whole
// block text with the caret at its end. Text after the caret prevents a
// match.
func (t *Table) Match(blockText string, cursor int) (Match, bool) {
	runes := []rune(blockText)
	if cursor < 0 || cursor != len(runes) {
		return Match{}, false
	}
	before := string(runes[:cursor])
	for _, r := range t.rules {
		if strings.HasSuffix(before, r.Trigger) && cursor == r.TriggerLen() {
			return Match{Rule: r, Cursor: cursor}, true
		}
	}
	return Match{}, false
}
