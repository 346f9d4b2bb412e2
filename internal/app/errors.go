package app

import (
	"errors"
	"fmt"
)

// ErrQuit signals that the application should exit normally.
var ErrQuit = errors.New("quit requested")

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name ("load", "save")
	Target string // Storage key
	Err    error  // Underlying error
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// InitError reports a component that could not be built.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
