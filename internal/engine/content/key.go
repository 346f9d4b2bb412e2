package content

import (
	"strings"

	"github.com/google/uuid"
)

// keyLen is the number of hex characters kept from a UUID.
const keyLen = 8

// NewKey returns a random block key.
func NewKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:keyLen]
}

// freshKey returns key if it is non-empty and unused, otherwise a new random
// key that is not used by any block of m.
func (m *Model) freshKey(key string) string {
	for {
		if key != "" {
			if _, taken := m.index[key]; !taken {
				return key
			}
		}
		key = NewKey()
	}
}
