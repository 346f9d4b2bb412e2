package codec

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every error Deserialize returns.
var ErrFormat = errors.New("malformed payload")

// FormatError describes a payload problem at a JSON path such as
// "blocks[2].styleRanges[0].end".
type FormatError struct {
	Path    string
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("malformed payload at %s: %s", e.Path, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFormat) hold for every FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatErr(path, format string, args ...any) *FormatError {
	return &FormatError{Path: path, Message: fmt.Sprintf(format, args...)}
}
