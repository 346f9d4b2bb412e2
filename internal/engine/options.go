package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/shortcut"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial document. The caret starts at the beginning
// of the first block.
func WithContent(m *content.Model) Option {
	return func(e *Engine) {
		if m != nil {
			e.initContent = m
		}
	}
}

// WithRules sets the shortcut table. The default table is used otherwise.
func WithRules(t *shortcut.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.detector = shortcut.NewDetector(t)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCommitHook registers fn to run after every commit. Hooks run outside
// the engine lock in registration order.
func WithCommitHook(fn func(Commit)) Option {
	return func(e *Engine) {
		if fn != nil {
			e.hooks = append(e.hooks, fn)
		}
	}
}

// WithReadOnly creates an engine that refuses every edit. Caret moves are
// still allowed.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
