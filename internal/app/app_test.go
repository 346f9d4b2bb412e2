package app

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/dshills/keydraft/internal/codec"
	"github.com/dshills/keydraft/internal/config"
	"github.com/dshills/keydraft/internal/engine/content"
	"github.com/dshills/keydraft/internal/event"
	"github.com/dshills/keydraft/internal/input/key"
	"github.com/dshills/keydraft/internal/storage"
)

var errStore = errors.New("store unavailable")

// failingStore fails every load and save.
type failingStore struct{}

func (failingStore) Load(context.Context) ([]byte, error) { return nil, errStore }
func (failingStore) Save(context.Context, []byte) error   { return errStore }

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) topics() []event.Topic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Topic, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Topic
	}
	return out
}

func (r *recorder) last(t event.Topic) (event.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Topic == t {
			return r.events[i], true
		}
	}
	return event.Event{}, false
}

func (r *recorder) count(t event.Topic) int {
	n := 0
	for _, tp := range r.topics() {
		if tp == t {
			n++
		}
	}
	return n
}

func newTestApp(t *testing.T, store storage.Store) (*Application, *recorder) {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = storage.BackendMemory

	app, err := New(Options{Config: cfg, Store: store, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(app.Shutdown)

	rec := &recorder{}
	if _, err := app.Bus().Subscribe("**", func(_ context.Context, ev event.Event) error {
		rec.mu.Lock()
		rec.events = append(rec.events, ev)
		rec.mu.Unlock()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	return app, rec
}

func memoryStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	s, err := storage.NewMemoryStore(storage.DefaultKey)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func typeText(t *testing.T, app *Application, text string) {
	t.Helper()
	for _, r := range text {
		ev := key.NewRuneEvent(r, key.ModNone)
		if r == '\n' {
			ev = key.NewSpecialEvent(key.KeyEnter, key.ModNone)
		}
		if _, err := app.HandleKey(ev); err != nil {
			t.Fatalf("HandleKey(%q): %v", r, err)
		}
	}
}

func press(t *testing.T, app *Application, spec string) (bool, error) {
	t.Helper()
	return app.HandleKey(key.MustParse(spec))
}

func TestOpenEmptyStore(t *testing.T) {
	app, rec := newTestApp(t, memoryStore(t))
	if err := app.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}

	m := app.Snapshot().Content()
	if m.Len() != 1 || m.HasText() {
		t.Errorf("expected one empty block, got %d blocks", m.Len())
	}
	ev, ok := rec.last(event.TopicDocumentLoaded)
	if !ok {
		t.Fatal("expected document.loaded")
	}
	if p := ev.Payload.(event.DocumentLoaded); !p.Fallback || p.Key != storage.DefaultKey {
		t.Errorf("unexpected payload %+v", p)
	}
	if rec.count(event.TopicDocumentLoadFailed) != 0 {
		t.Error("a missing document is not a load failure")
	}
	if app.Modified() {
		t.Error("a fresh document should not be modified")
	}
}

func TestOpenStoredDocument(t *testing.T) {
	title, _ := content.NewBlock("t", content.HeaderOne, "Title")
	body, _ := content.NewBlock("b", content.Unstyled, "body text",
		content.StyleRange{Style: content.Bold, Start: 0, End: 4})
	want, err := content.NewModel([]*content.Block{title, body}, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := codec.Serialize(want)
	if err != nil {
		t.Fatal(err)
	}

	store := memoryStore(t)
	if err := store.Save(context.Background(), data); err != nil {
		t.Fatal(err)
	}

	app, rec := newTestApp(t, store)
	if err := app.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !app.Snapshot().Content().Equal(want) {
		t.Errorf("loaded content differs: %s", app.Snapshot().Content().PlainText())
	}
	ev, _ := rec.last(event.TopicDocumentLoaded)
	if p := ev.Payload.(event.DocumentLoaded); p.Fallback || p.Blocks != 2 {
		t.Errorf("unexpected payload %+v", p)
	}
	if app.Modified() {
		t.Error("loading should not mark the document modified")
	}
}

func TestOpenFallsBackOnFailure(t *testing.T) {
	garbage := memoryStore(t)
	if err := garbage.Save(context.Background(), []byte(`{"blocks": "nope"}`)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		store   storage.Store
		wantErr error
	}{
		{"undecodable", garbage, codec.ErrFormat},
		{"store error", failingStore{}, errStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, rec := newTestApp(t, tt.store)
			if err := app.Open(context.Background()); err != nil {
				t.Fatalf("Open should not fail: %v", err)
			}

			var got []event.Topic
			for _, tp := range rec.topics() {
				if tp.Matches("document.*") {
					got = append(got, tp)
				}
			}
			if !slices.Equal(got, []event.Topic{event.TopicDocumentLoadFailed, event.TopicDocumentLoaded}) {
				t.Errorf("unexpected events %v", got)
			}
			failed, _ := rec.last(event.TopicDocumentLoadFailed)
			if err := failed.Payload.(event.DocumentLoadFailed).Err; !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if app.Snapshot().Content().HasText() {
				t.Error("expected an empty document")
			}
			if app.Status() == "" {
				t.Error("expected a status message")
			}
		})
	}
}

func TestOpenCancelledContext(t *testing.T) {
	app, _ := newTestApp(t, memoryStore(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Open(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTypingShortcuts(t *testing.T) {
	app, rec := newTestApp(t, memoryStore(t))
	if err := app.Open(context.Background()); err != nil {
		t.Fatal(err)
	}

	typeText(t, app, "# Title\n* ab")

	m := app.Snapshot().Content()
	if m.Len() != 2 {
		t.Fatalf("expected 2 blocks, got %d", m.Len())
	}
	first, second := m.BlockAt(0), m.BlockAt(1)
	if first.Type() != content.HeaderOne || first.Text() != "Title" {
		t.Errorf("unexpected first block %s", first)
	}
	if second.Type() != content.Unstyled || second.Text() != "ab" {
		t.Errorf("unexpected second block %s", second)
	}
	if !second.HasStyleOver(content.NewRange(0, 2), content.Bold) {
		t.Errorf("expected BOLD over [0,2), got %v", second.Styles())
	}

	if n := rec.count(event.TopicShortcutApplied); n != 2 {
		t.Errorf("expected 2 shortcut events, got %d", n)
	}
	ev, _ := rec.last(event.TopicShortcutApplied)
	if p := ev.Payload.(event.ShortcutApplied); p.Trigger != "*" || p.Command != "inline:BOLD" {
		t.Errorf("unexpected payload %+v", p)
	}
	if rec.count(event.TopicContentChanged) == 0 {
		t.Error("expected content.changed events")
	}
	if !app.Modified() {
		t.Error("expected the document to be modified")
	}
}

func TestSpaceReportsCommit(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = storage.BackendMemory

	tests := []struct {
		name     string
		readOnly bool
		want     bool
	}{
		{"editable", false, true},
		{"read only", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := New(Options{Config: cfg, Store: memoryStore(t), Logger: zap.NewNop(), ReadOnly: tt.readOnly})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			t.Cleanup(app.Shutdown)
			if err := app.Open(context.Background()); err != nil {
				t.Fatal(err)
			}

			handled, err := app.HandleKey(key.NewRuneEvent(' ', key.ModNone))
			if err != nil {
				t.Fatal(err)
			}
			if handled != tt.want {
				t.Errorf("expected handled=%v, got %v", tt.want, handled)
			}
		})
	}
}

func TestSave(t *testing.T) {
	store := memoryStore(t)
	app, rec := newTestApp(t, store)
	if err := app.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	typeText(t, app, "** red")

	handled, err := press(t, app, "Ctrl+S")
	if err != nil || !handled {
		t.Fatalf("Ctrl+S: handled=%v err=%v", handled, err)
	}
	if app.Status() != "Saved" {
		t.Errorf("unexpected status %q", app.Status())
	}
	if app.Modified() {
		t.Error("saving should clear the modified flag")
	}

	data, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	m, err := codec.Deserialize(data)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(app.Snapshot().Content()) {
		t.Error("stored document differs from the editor content")
	}
	ev, ok := rec.last(event.TopicDocumentSaved)
	if !ok {
		t.Fatal("expected document.saved")
	}
	if p := ev.Payload.(event.DocumentSaved); p.Bytes != len(data) {
		t.Errorf("expected %d bytes, got %d", len(data), p.Bytes)
	}
}

func TestSaveFailure(t *testing.T) {
	app, rec := newTestApp(t, failingStore{})
	if err := app.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	typeText(t, app, "x")

	handled, err := press(t, app, "Ctrl+S")
	if handled {
		t.Error("a failed save should not report handled")
	}
	if !errors.Is(err, errStore) {
		t.Fatalf("expected errStore, got %v", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "save" || opErr.Target != storage.DefaultKey {
		t.Errorf("unexpected error %v", err)
	}
	if !strings.HasPrefix(app.Status(), "Save failed") {
		t.Errorf("unexpected status %q", app.Status())
	}
	if rec.count(event.TopicDocumentSaveFailed) != 1 {
		t.Error("expected document.save_failed")
	}
	if !app.Modified() {
		t.Error("a failed save should keep the modified flag")
	}
}

func TestQuitKeys(t *testing.T) {
	app, _ := newTestApp(t, memoryStore(t))
	for _, spec := range []string{"Ctrl+Q", "Escape"} {
		if _, err := press(t, app, spec); !errors.Is(err, ErrQuit) {
			t.Errorf("%s: expected ErrQuit, got %v", spec, err)
		}
	}
	// Terminals report Ctrl+q in lower case.
	if _, err := app.HandleKey(key.NewRuneEvent('q', key.ModCtrl)); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestToggleKeys(t *testing.T) {
	app, _ := newTestApp(t, memoryStore(t))
	if err := app.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	focusType := func() content.BlockType {
		b, _ := app.Snapshot().FocusBlock()
		return b.Type()
	}

	tests := []struct {
		spec string
		want content.BlockType
	}{
		{"Alt+1", content.HeaderOne},
		{"Alt+1", content.Unstyled},
		{"Alt+2", content.HeaderTwo},
		{"Alt+q", content.Blockquote},
		{"Alt+C", content.CodeBlock},
	}
	for _, tt := range tests {
		if _, err := press(t, app, tt.spec); err != nil {
			t.Fatal(err)
		}
		if got := focusType(); got != tt.want {
			t.Errorf("after %s: expected %s, got %s", tt.spec, tt.want, got)
		}
	}

	if _, err := press(t, app, "Ctrl+B"); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(app.Snapshot().CurrentInlineStyles(), content.Bold) {
		t.Errorf("expected BOLD active, got %v", app.Snapshot().CurrentInlineStyles())
	}
	typeText(t, app, "hi")
	b, _ := app.Snapshot().FocusBlock()
	if !b.HasStyleOver(content.NewRange(0, 2), content.Bold) {
		t.Errorf("expected bold text, got %v", b.Styles())
	}
}

func TestSelectionKeys(t *testing.T) {
	app, _ := newTestApp(t, memoryStore(t))
	if err := app.Open(context.Background()); err != nil {
		t.Fatal(err)
	}
	typeText(t, app, "abc")

	for i := 0; i < 2; i++ {
		if _, err := press(t, app, "Shift+Left"); err != nil {
			t.Fatal(err)
		}
	}
	sel := app.Snapshot().Selection()
	if sel.AnchorOffset != 3 || sel.FocusOffset != 1 {
		t.Fatalf("unexpected selection %s", sel)
	}

	if _, err := press(t, app, "Backspace"); err != nil {
		t.Fatal(err)
	}
	if got := app.Snapshot().Content().PlainText(); got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}

	handled, err := app.HandleKey(key.NewRuneEvent('x', key.ModCtrl))
	if handled || err != nil {
		t.Errorf("unbound keys should be ignored, got %v %v", handled, err)
	}
}

func TestApplyConfig(t *testing.T) {
	app, rec := newTestApp(t, memoryStore(t))
	if err := app.Open(context.Background()); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Editor.Placeholder = "Begin"
	cfg.Shortcuts = []config.ShortcutConfig{{Trigger: "##", Block: string(content.HeaderTwo)}}
	if err := app.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if app.Placeholder() != "Begin" {
		t.Errorf("unexpected placeholder %q", app.Placeholder())
	}
	if rec.count(event.TopicConfigReloaded) != 1 {
		t.Error("expected config.reloaded")
	}

	typeText(t, app, "## ")
	b, _ := app.Snapshot().FocusBlock()
	if b.Type() != content.HeaderTwo || b.Text() != "" {
		t.Errorf("unexpected block %s", b)
	}

	bad := config.Default()
	bad.Shortcuts = []config.ShortcutConfig{{Trigger: "!"}}
	if err := app.ApplyConfig(bad); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if app.Engine().Rules().Len() != 1 {
		t.Error("a rejected config should keep the current rules")
	}
}

func TestNewRejectsInvalidOverrides(t *testing.T) {
	_, err := New(Options{Config: config.Default(), Backend: "floppy", Logger: zap.NewNop()})
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "config" {
		t.Fatalf("expected config InitError, got %v", err)
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewMissingExplicitConfig(t *testing.T) {
	_, err := New(Options{ConfigPath: t.TempDir() + "/none.toml", Logger: zap.NewNop()})
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
