package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is one notification.
type Event struct {
	Topic    Topic
	Payload  any
	Metadata Metadata
}

// Metadata is attached to every event.
type Metadata struct {
	ID        string
	Timestamp time.Time
	Source    string
}

// New creates an event with fresh metadata.
func New(t Topic, payload any, source string) Event {
	return Event{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// DocumentLoaded is published after the document was opened. Fallback is
// set when nothing could be loaded and an empty document was started.
type DocumentLoaded struct {
	Key      string
	Blocks   int
	Fallback bool
}

// DocumentLoadFailed is published when a stored document could not be
// loaded or decoded.
type DocumentLoadFailed struct {
	Key string
	Err error
}

// DocumentSaved is published after a successful save.
type DocumentSaved struct {
	Key      string
	Bytes    int
	Revision uint64
}

// DocumentSaveFailed is published when a save fails.
type DocumentSaveFailed struct {
	Key string
	Err error
}

// ContentChanged is published after a commit changed the document.
type ContentChanged struct {
	Revision uint64
}

// ShortcutApplied is published when a trigger fired.
type ShortcutApplied struct {
	Trigger  string
	Command  string
	Revision uint64
}

// ConfigReloaded is published after the configuration file was reloaded.
type ConfigReloaded struct {
	Path string
}
