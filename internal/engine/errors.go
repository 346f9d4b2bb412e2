package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrNilContent indicates a nil content model was passed to Reset.
	ErrNilContent = errors.New("nil content model")
)
