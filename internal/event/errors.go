package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the event bus.
var (
	// ErrInvalidTopic is returned when a topic is empty or malformed.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrHandlerPanic is matched by every PanicError.
	ErrHandlerPanic = errors.New("handler panicked")
)

// PanicError reports a recovered handler panic.
type PanicError struct {
	Topic     Topic
	Recovered any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler for %s panicked: %v", e.Topic, e.Recovered)
}

func (e *PanicError) Unwrap() error {
	return ErrHandlerPanic
}
