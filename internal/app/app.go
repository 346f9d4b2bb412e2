package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/keydraft/internal/config"
	"github.com/dshills/keydraft/internal/engine"
	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/event"
	"github.com/dshills/keydraft/internal/logging"
	"github.com/dshills/keydraft/internal/storage"
	"github.com/dshills/keydraft/internal/style"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means the per-user
	// default, which may be absent.
	ConfigPath string

	// Config, when set, is used instead of loading ConfigPath.
	Config *config.Config

	// LogLevel overrides the configured log level.
	LogLevel string

	// Backend overrides the configured storage backend.
	Backend string

	// Store, when set, is used instead of opening the configured backend.
	Store storage.Store

	// Logger, when set, is used instead of building one from the
	// configuration.
	Logger *zap.Logger

	// ReadOnly rejects every edit.
	ReadOnly bool
}

// Application is one editing session.
type Application struct {
	mu          sync.RWMutex
	cfg         *config.Config
	configPath  string
	styles      *style.Table
	placeholder string
	status      string

	logger *zap.Logger
	base   *zap.Logger
	store  storage.Store
	bus    *event.Bus
	engine *engine.Engine

	dirty    atomic.Bool
	shutdown sync.Once
}

// New creates an Application. The document is empty until Open is called.
func New(opts Options) (*Application, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger, err = logging.New(cfg.LoggingOptions())
		if err != nil {
			return nil, &InitError{Component: "logger", Err: err}
		}
	}

	store := opts.Store
	if store == nil {
		store, err = storage.Open(cfg.StorageOptions())
		if err != nil {
			return nil, &InitError{Component: "storage", Err: err}
		}
	}

	rules, err := cfg.ShortcutTable()
	if err != nil {
		return nil, &InitError{Component: "shortcuts", Err: err}
	}
	styles, err := cfg.StyleTable()
	if err != nil {
		return nil, &InitError{Component: "styles", Err: err}
	}

	app := &Application{
		cfg:         cfg,
		configPath:  path,
		styles:      styles,
		placeholder: cfg.Placeholder(),
		logger:      logging.Component(logger, "app"),
		base:        logger,
		store:       store,
		bus:         event.NewBus(event.WithLogger(logger)),
	}
	engineOpts := []engine.Option{
		engine.WithRules(rules),
		engine.WithLogger(logger),
		engine.WithCommitHook(app.onCommit),
	}
	if opts.ReadOnly {
		engineOpts = append(engineOpts, engine.WithReadOnly())
	}
	app.engine = engine.New(engineOpts...)
	return app, nil
}

// loadConfig resolves the configuration and the path to watch, if any.
func loadConfig(opts Options) (*config.Config, string, error) {
	cfg, path := opts.Config, opts.ConfigPath
	if cfg == nil {
		var err error
		explicit := path != ""
		if !explicit {
			if path, err = config.DefaultPath(); err != nil {
				path = ""
			}
		}
		cfg, err = config.Load(path)
		if errors.Is(err, config.ErrFileNotFound) && !explicit {
			path = ""
			cfg, err = config.Load("")
		}
		if err != nil {
			return nil, "", err
		}
	}

	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Backend != "" {
		cfg.Storage.Backend = opts.Backend
	}
	if opts.LogLevel != "" || opts.Backend != "" {
		if err := cfg.Validate(); err != nil {
			return nil, "", err
		}
	}
	return cfg, path, nil
}

// Engine returns the editing engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Snapshot returns the current editor snapshot.
func (app *Application) Snapshot() engine.Snapshot {
	return app.engine.Snapshot()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Styles returns the active style table.
func (app *Application) Styles() *style.Table {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.styles
}

// Placeholder returns the text shown in an empty document.
func (app *Application) Placeholder() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.placeholder
}

// Status returns the status line message.
func (app *Application) Status() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.status
}

func (app *Application) setStatus(msg string) {
	app.mu.Lock()
	app.status = msg
	app.mu.Unlock()
}

// Modified reports whether the document changed since it was loaded or
// last saved.
func (app *Application) Modified() bool {
	return app.dirty.Load()
}

// ToggleBlockType toggles the block type of the selected blocks.
func (app *Application) ToggleBlockType(t content.BlockType) bool {
	return app.engine.ToggleBlockType(t)
}

// ToggleInlineStyle toggles an inline style over the selection, or for
// the next typed text when the selection is collapsed.
func (app *Application) ToggleInlineStyle(s content.InlineStyle) bool {
	return app.engine.ToggleInlineStyle(s)
}

// ApplyConfig swaps in the shortcut rules, styles and placeholder of cfg.
// Storage and logging settings only take effect on restart. An invalid
// configuration leaves the current one in place.
func (app *Application) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	rules, err := cfg.ShortcutTable()
	if err != nil {
		return err
	}
	styles, err := cfg.StyleTable()
	if err != nil {
		return err
	}

	app.engine.SetRules(rules)
	app.mu.Lock()
	app.cfg = cfg
	app.styles = styles
	app.placeholder = cfg.Placeholder()
	path := app.configPath
	app.mu.Unlock()

	app.logger.Info("config applied", zap.Int("shortcuts", rules.Len()))
	app.bus.Emit(context.Background(), event.TopicConfigReloaded, event.ConfigReloaded{Path: path}, "app")
	return nil
}

// onCommit turns engine commits into bus events.
func (app *Application) onCommit(c engine.Commit) {
	ctx := context.Background()
	rev := uint64(c.After.Revision())
	if c.ContentChanged {
		app.dirty.Store(true)
		app.bus.Emit(ctx, event.TopicContentChanged, event.ContentChanged{Revision: rev}, "engine")
	}
	if c.Shortcut != nil {
		app.bus.Emit(ctx, event.TopicShortcutApplied, event.ShortcutApplied{
			Trigger:  c.Shortcut.Trigger,
			Command:  c.Shortcut.Command.String(),
			Revision: rev,
		}, "engine")
	}
}

// Shutdown releases the store and flushes the logger. It is safe to call
// more than once.
func (app *Application) Shutdown() {
	app.shutdown.Do(func() {
		if c, ok := app.store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				app.logger.Warn("closing store", zap.Error(err))
			}
		}
		_ = app.logger.Sync()
	})
}
