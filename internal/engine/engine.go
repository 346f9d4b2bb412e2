package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/engine/selection"
	"github.com/dshills/keydraft/internal/engine/snapshot"
	"github.com/dshills/keydraft/internal/engine/transform"
	"github.com/dshills/keydraft/internal/input/key"
	"github.com/dshills/keydraft/internal/logging"
	"github.com/dshills/keydraft/internal/shortcut"
)

// Re-export commonly used types for convenience.
type (
	// Snapshot is an immutable editor state.
	Snapshot = snapshot.Snapshot

	// Selection is an anchor/focus pair.
	Selection = selection.Selection

	// Transform computes the next snapshot from the current one.
	Transform = func(snapshot.Snapshot) (snapshot.Snapshot, bool)
)

// Motion names a caret movement.
type Motion int

// Caret movements.
const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionHome
	MotionEnd
)

// String returns the motion name.
func (m Motion) String() string {
	switch m {
	case MotionLeft:
		return "left"
	case MotionRight:
		return "right"
	case MotionUp:
		return "up"
	case MotionDown:
		return "down"
	case MotionHome:
		return "home"
	case MotionEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Commit describes one committed change.
type Commit struct {
	Before Snapshot
	After  Snapshot

	// Shortcut is the rule that produced the commit, if any.
	Shortcut *shortcut.Rule

	// ContentChanged is false for commits that only moved the selection or
	// changed the inline override.
	ContentChanged bool
}

// Engine is the thread-safe owner of an editing session.
type Engine struct {
	mu sync.RWMutex

	snap     Snapshot
	detector *shortcut.Detector
	logger   *zap.Logger
	hooks    []func(Commit)
	readOnly bool

	// Initialization
	initContent *content.Model
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.detector == nil {
		e.detector = shortcut.NewDetector(nil)
	}
	e.logger = logging.Component(e.logger, "engine")

	if e.initContent != nil {
		e.snap = snapshot.New(e.initContent, selection.AtStart(e.initContent))
	} else {
		e.snap = snapshot.Empty()
	}
	e.initContent = nil
	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Snapshot returns the current snapshot.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap
}

// Content returns the current content model.
func (e *Engine) Content() *content.Model {
	return e.Snapshot().Content()
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	return e.Snapshot().Selection()
}

// Revision returns the current revision id.
func (e *Engine) Revision() snapshot.RevisionID {
	return e.Snapshot().Revision()
}

// IsReadOnly returns true if the engine refuses edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Rules returns the active shortcut table.
func (e *Engine) Rules() *shortcut.Table {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.detector.Table()
}

// ============================================================================
// Session Management
// ============================================================================

// SetRules swaps the shortcut table. A nil table restores the defaults.
func (e *Engine) SetRules(t *shortcut.Table) {
	e.mu.Lock()
	e.detector = shortcut.NewDetector(t)
	e.mu.Unlock()
	e.logger.Debug("shortcut table replaced", zap.Int("rules", e.Rules().Len()))
}

// Reset installs m as the document with the caret at the start of its first
// block. The revision keeps counting from the current snapshot.
func (e *Engine) Reset(m *content.Model) error {
	if m == nil {
		return ErrNilContent
	}
	e.commit(func(s Snapshot) (Snapshot, *shortcut.Rule, bool) {
		return s.Next(m, selection.AtStart(m)), nil, true
	})
	return nil
}

// Apply runs fn against the current snapshot and commits its result when fn
// reports a change. It returns whether a commit happened.
func (e *Engine) Apply(fn Transform) bool {
	if e.readOnly {
		return false
	}
	return e.commit(func(s Snapshot) (Snapshot, *shortcut.Rule, bool) {
		next, ok := fn(s)
		return next, nil, ok
	})
}

// OnCommit registers fn to run after every commit.
func (e *Engine) OnCommit(fn func(Commit)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks = append(e.hooks[:len(e.hooks):len(e.hooks)], fn)
}

// ============================================================================
// Editing
// ============================================================================

// HandleSpace processes a space key press. When a shortcut matches, its
// trigger is removed and its command applied in a single commit; otherwise
// a literal space is inserted. The returned bool reports whether a shortcut
// fired.
func (e *Engine) HandleSpace() (shortcut.Match, bool) {
	if e.readOnly {
		return shortcut.Match{}, false
	}

	var (
		match shortcut.Match
		fired bool
	)
	space := key.NewRuneEvent(' ', key.ModNone)
	e.commit(func(s Snapshot) (Snapshot, *shortcut.Rule, bool) {
		if m, ok := transform.DetectIn(e.detector, s, space); ok {
			if next, ok := transform.ApplyShortcut(s, m); ok {
				match, fired = m, true
				return next, &m.Rule, true
			}
		}
		next, ok := transform.InsertText(s, " ")
		return next, nil, ok
	})

	if fired {
		e.logger.Debug("shortcut applied",
			zap.String("trigger", match.Rule.Trigger),
			zap.Stringer("command", match.Rule.Command),
		)
	}
	return match, fired
}

// InsertText inserts text at the caret, replacing any selection.
func (e *Engine) InsertText(text string) bool {
	return e.Apply(func(s Snapshot) (Snapshot, bool) {
		return transform.InsertText(s, text)
	})
}

// SplitBlock splits the focused block at the caret.
func (e *Engine) SplitBlock() bool {
	return e.Apply(transform.SplitBlock)
}

// Backspace deletes backward.
func (e *Engine) Backspace() bool {
	return e.Apply(transform.Backspace)
}

// Delete deletes forward.
func (e *Engine) Delete() bool {
	return e.Apply(transform.Delete)
}

// ToggleBlockType toggles typ on the selected blocks.
func (e *Engine) ToggleBlockType(typ content.BlockType) bool {
	return e.Apply(func(s Snapshot) (Snapshot, bool) {
		return transform.ToggleBlockType(s, typ)
	})
}

// ToggleInlineStyle toggles style on the selection or in the inline override.
func (e *Engine) ToggleInlineStyle(style content.InlineStyle) bool {
	return e.Apply(func(s Snapshot) (Snapshot, bool) {
		return transform.ToggleInlineStyle(s, style)
	})
}

// Move moves the caret. With extend set the selection grows instead.
func (e *Engine) Move(m Motion, extend bool) bool {
	var fn func(Snapshot, bool) (Snapshot, bool)
	switch m {
	case MotionLeft:
		fn = transform.MoveLeft
	case MotionRight:
		fn = transform.MoveRight
	case MotionUp:
		fn = transform.MoveUp
	case MotionDown:
		fn = transform.MoveDown
	case MotionHome:
		fn = transform.MoveHome
	case MotionEnd:
		fn = transform.MoveEnd
	default:
		return false
	}
	// Moves are allowed on read-only engines.
	return e.commit(func(s Snapshot) (Snapshot, *shortcut.Rule, bool) {
		next, ok := fn(s, extend)
		return next, nil, ok
	})
}

// ============================================================================
// Internals
// ============================================================================

// commit applies step under the write lock and runs the hooks once the
// lock is released.
func (e *Engine) commit(step func(Snapshot) (Snapshot, *shortcut.Rule, bool)) bool {
	e.mu.Lock()
	before := e.snap
	next, rule, ok := step(before)
	if ok {
		e.snap = next
	}
	hooks := e.hooks
	e.mu.Unlock()

	if !ok {
		return false
	}
	c := Commit{
		Before:         before,
		After:          next,
		Shortcut:       rule,
		ContentChanged: next.Content() != before.Content(),
	}
	for _, h := range hooks {
		h(c)
	}
	return true
}
