package content

import "errors"

// Errors returned by content operations.
var (
	// ErrInvalidRange indicates an offset or range outside a block's text.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidText indicates block text that is not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")

	// ErrUnknownBlock indicates a block key that is not part of the model.
	ErrUnknownBlock = errors.New("unknown block")

	// ErrEmptyModel indicates an attempt to build a model without blocks.
	ErrEmptyModel = errors.New("model must contain at least one block")

	// ErrDuplicateKey indicates two blocks sharing the same key.
	ErrDuplicateKey = errors.New("duplicate block key")
)
