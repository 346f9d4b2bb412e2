package event

import (
	"context"
	"errors"
	"testing"
)

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"document.saved", "document.saved", true},
		{"document.saved", "document.*", true},
		{"document.saved", "*.saved", true},
		{"document.saved", "**", true},
		{"document.saved", "document.**", true},
		{"document", "document.**", true},
		{"document.saved", "content.*", false},
		{"document.saved", "document", false},
		{"document", "document.*", false},
		{"a.b.c", "a.*", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q matches %q: expected %v, got %v", tt.topic, tt.pattern, tt.want, got)
		}
	}
}

func TestTopicValid(t *testing.T) {
	for _, tp := range []Topic{"", ".", "a..b", "a."} {
		if tp.Valid() {
			t.Errorf("%q should be invalid", tp)
		}
	}
	if !TopicDocumentLoadFailed.Valid() {
		t.Error("document.load_failed should be valid")
	}
}

func TestPublishOrder(t *testing.T) {
	b := NewBus()
	var got []string
	record := func(name string) Handler {
		return func(context.Context, Event) error {
			got = append(got, name)
			return nil
		}
	}

	_, _ = b.Subscribe("document.*", record("first"))
	_, _ = b.Subscribe(TopicDocumentSaved, record("second"))
	_, _ = b.Subscribe(TopicContentChanged, record("other"))

	if err := b.Publish(context.Background(), New(TopicDocumentSaved, DocumentSaved{Bytes: 3}, "test")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("unexpected delivery %v", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	unsub, err := b.Subscribe("**", func(context.Context, Event) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	b.Emit(context.Background(), TopicConfigReloaded, ConfigReloaded{}, "test")
	unsub()
	unsub()
	b.Emit(context.Background(), TopicConfigReloaded, ConfigReloaded{}, "test")

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if b.Len() != 0 {
		t.Errorf("expected no subscriptions, got %d", b.Len())
	}
}

func TestPanicRecovered(t *testing.T) {
	b := NewBus()
	after := false
	_, _ = b.Subscribe("**", func(context.Context, Event) error { panic("boom") })
	_, _ = b.Subscribe("**", func(context.Context, Event) error {
		after = true
		return nil
	})

	err := b.Publish(context.Background(), New(TopicContentChanged, ContentChanged{}, "test"))
	if !errors.Is(err, ErrHandlerPanic) {
		t.Fatalf("expected ErrHandlerPanic, got %v", err)
	}
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Recovered != "boom" {
		t.Errorf("expected recovered value boom, got %v", err)
	}
	if !after {
		t.Error("later handlers should still run")
	}
}

func TestHandlerErrorsJoined(t *testing.T) {
	b := NewBus()
	errA, errB := errors.New("a"), errors.New("b")
	_, _ = b.Subscribe("**", func(context.Context, Event) error { return errA })
	_, _ = b.Subscribe("**", func(context.Context, Event) error { return errB })

	err := b.Publish(context.Background(), New(TopicContentChanged, nil, "test"))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both errors, got %v", err)
	}
}

func TestSubscribeErrors(t *testing.T) {
	b := NewBus()
	if _, err := b.Subscribe("document.*", nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if _, err := b.Subscribe("", func(context.Context, Event) error { return nil }); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
	if err := b.Publish(context.Background(), Event{}); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
}

func TestNewMetadata(t *testing.T) {
	a := New(TopicDocumentLoaded, DocumentLoaded{Blocks: 1}, "app")
	b := New(TopicDocumentLoaded, DocumentLoaded{Blocks: 1}, "app")
	if a.Metadata.ID == "" || a.Metadata.ID == b.Metadata.ID {
		t.Error("expected unique event ids")
	}
	if a.Metadata.Source != "app" || a.Metadata.Timestamp.IsZero() {
		t.Errorf("unexpected metadata %+v", a.Metadata)
	}
}
