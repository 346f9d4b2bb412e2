package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/keydraft/internal/codec"
	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/event"
	"github.com/dshills/keydraft/internal/storage"
)

func (app *Application) storeKey() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	if app.cfg.Storage.Key == "" {
		return storage.DefaultKey
	}
	return app.cfg.Storage.Key
}

// Open loads the stored document into the engine. Nothing stored, a store
// error and an undecodable payload all start an empty document; the last
// two are logged and published as document.load_failed. Open only fails
// when ctx is already done.
func (app *Application) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := app.storeKey()

	m, err := app.load(ctx)
	fallback := m == nil
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		app.logger.Info("no stored document, starting empty", zap.String("key", key))
	default:
		app.logger.Warn("stored document unusable, starting empty", zap.String("key", key), zap.Error(err))
		app.bus.Emit(ctx, event.TopicDocumentLoadFailed, event.DocumentLoadFailed{Key: key, Err: err}, "app")
		app.setStatus("Could not load document; started a new one")
	}
	if fallback {
		m = content.Empty()
	}

	if err := app.engine.Reset(m); err != nil {
		return err
	}
	app.dirty.Store(false)
	if !fallback {
		app.logger.Info("document loaded", zap.String("key", key), zap.Int("blocks", m.Len()))
	}
	app.bus.Emit(ctx, event.TopicDocumentLoaded, event.DocumentLoaded{Key: key, Blocks: m.Len(), Fallback: fallback}, "app")
	return nil
}

func (app *Application) load(ctx context.Context) (*content.Model, error) {
	data, err := app.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	m, err := codec.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("decoding stored document: %w", err)
	}
	return m, nil
}

// Save serializes the current document and writes it to the store. A
// failure is returned as an *OperationError, shown in the status line and
// published as document.save_failed.
func (app *Application) Save(ctx context.Context) error {
	key := app.storeKey()
	snap := app.engine.Snapshot()

	data, err := codec.Serialize(snap.Content())
	if err == nil {
		err = app.store.Save(ctx, data)
	}
	if err != nil {
		opErr := &OperationError{Op: "save", Target: key, Err: err}
		app.logger.Error("save failed", zap.String("key", key), zap.Error(err))
		app.setStatus("Save failed: " + err.Error())
		app.bus.Emit(ctx, event.TopicDocumentSaveFailed, event.DocumentSaveFailed{Key: key, Err: err}, "app")
		return opErr
	}

	if app.engine.Revision() == snap.Revision() {
		app.dirty.Store(false)
	}
	rev := uint64(snap.Revision())
	app.logger.Info("document saved", zap.String("key", key), zap.Int("bytes", len(data)), zap.Uint64("revision", rev))
	app.setStatus("Saved")
	app.bus.Emit(ctx, event.TopicDocumentSaved, event.DocumentSaved{Key: key, Bytes: len(data), Revision: rev}, "app")
	return nil
}
