package app

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/keydraft/internal/config"
	"github.com/dshills/keydraft/internal/renderer"
)

// Screen is the part of tcell.Screen the event loop uses. The screen must
// already be initialized.
type Screen interface {
	renderer.Surface
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
	Sync()
}

// Run draws the session on screen and processes its events until the
// user quits, ctx is cancelled or the screen stops delivering events.
// A quit returns ErrQuit. When the configuration came from a file, the
// file is watched and reloaded while Run is active.
func (app *Application) Run(ctx context.Context, screen Screen) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := renderer.New(screen,
		renderer.WithStyles(app.Styles()),
		renderer.WithPlaceholder(app.Placeholder()),
	)

	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	if path := app.configPath; path != "" {
		go app.watchConfig(ctx, path, screen)
	}

	draw := func() {
		r.SetStyles(app.Styles())
		r.SetPlaceholder(app.Placeholder())
		r.Draw(app.Snapshot(), app.Status())
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if _, err := app.HandleKey(renderer.ConvertEvent(ev)); err != nil {
					if errors.Is(err, ErrQuit) {
						return err
					}
					// Save failures are already in the status line.
					app.logger.Debug("key handling failed", zap.Error(err))
				}
			}
			draw()
		}
	}
}

func (app *Application) watchConfig(ctx context.Context, path string, screen Screen) {
	err := config.Watch(ctx, path, func(cfg *config.Config) {
		if err := app.ApplyConfig(cfg); err != nil {
			app.logger.Warn("reloaded config rejected", zap.Error(err))
			return
		}
		app.setStatus("Configuration reloaded")
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}, config.WithLogger(app.base))
	if err != nil {
		app.logger.Warn("config watch stopped", zap.String("path", path), zap.Error(err))
	}
}
