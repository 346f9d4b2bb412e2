package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/keydraft/internal/logging"
)

// Handler handles one event.
type Handler func(ctx context.Context, ev Event) error

type subscription struct {
	id      uint64
	pattern Topic
	handler Handler
}

// Bus delivers events to subscribers synchronously.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
	logger *zap.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used to report handler failures.
func WithLogger(l *zap.Logger) BusOption {
	return func(b *Bus) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.Component(b.logger, "event")
	return b
}

// Subscribe registers h for topics matching pattern. The returned function
// removes the subscription; calling it more than once is harmless.
func (b *Bus) Subscribe(pattern Topic, h Handler) (func(), error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if !pattern.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, pattern: pattern, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}, nil
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every matching handler in subscription order.
// Every handler runs even when an earlier one fails; their errors are
// joined.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Topic.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, ev.Topic)
	}

	b.mu.RLock()
	var handlers []Handler
	for _, s := range b.subs {
		if ev.Topic.Matches(s.pattern) {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := b.call(ctx, h, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Emit publishes a new event built from topic and payload and logs any
// handler failure instead of returning it.
func (b *Bus) Emit(ctx context.Context, t Topic, payload any, source string) {
	if err := b.Publish(ctx, New(t, payload, source)); err != nil {
		b.logger.Warn("event delivery failed", zap.Stringer("topic", t), zap.Error(err))
	}
}

// Len returns the number of subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) call(ctx context.Context, h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.Stringer("topic", ev.Topic),
				zap.Any("panic", r),
			)
			err = &PanicError{Topic: ev.Topic, Recovered: r}
		}
	}()
	return h(ctx, ev)
}
