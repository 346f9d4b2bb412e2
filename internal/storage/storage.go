// Package storage persists serialized documents under a single key.
//
// A Store is a flat key/value slot: Load returns the last saved payload and
// Save replaces it. Three backends are provided: one JSON file per key on
// disk, an in-process go-cache, and Redis.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "editorData"

// Errors returned by stores.
var (
	// ErrNotFound indicates that nothing has been saved under the key yet.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidKey indicates a key that the backend cannot store.
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrUnknownBackend indicates an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Store loads and saves one serialized document.
type Store interface {
	// Load returns the saved payload, or ErrNotFound.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the saved payload.
	Save(ctx context.Context, data []byte) error
}

// validateKey rejects keys that could escape a directory or collide with
// temporary files.
func validateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`), key == ".", key == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidKey, key)
	}
	return nil
}
