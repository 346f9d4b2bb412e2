package event

import "strings"

// Topic is a dot-separated event type.
type Topic string

// Session topics.
const (
	TopicDocumentLoaded     Topic = "document.loaded"
	TopicDocumentLoadFailed Topic = "document.load_failed"
	TopicDocumentSaved      Topic = "document.saved"
	TopicDocumentSaveFailed Topic = "document.save_failed"
	TopicContentChanged     Topic = "content.changed"
	TopicShortcutApplied    Topic = "shortcut.applied"
	TopicConfigReloaded     Topic = "config.reloaded"
)

// Wildcards usable in subscription patterns.
const (
	WildcardSingle = "*"
	WildcardMulti  = "**"
	separator      = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Valid reports whether t is non-empty and has no empty segments.
func (t Topic) Valid() bool {
	if t == "" {
		return false
	}
	for _, seg := range strings.Split(string(t), separator) {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether the concrete topic t matches pattern. "*"
// matches exactly one segment; "**" matches zero or more and may only
// appear as the last segment.
func (t Topic) Matches(pattern Topic) bool {
	ts := strings.Split(string(t), separator)
	ps := strings.Split(string(pattern), separator)
	for i, p := range ps {
		if p == WildcardMulti && i == len(ps)-1 {
			return true
		}
		if i >= len(ts) {
			return false
		}
		if p != WildcardSingle && p != ts[i] {
			return false
		}
	}
	return len(ts) == len(ps)
}
