package storage

import (
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string
	Key      string
	Dir      string
	RedisURL string
}

// Open builds the configured store. An empty backend means file and an
// empty key means DefaultKey.
func Open(cfg Config) (Store, error) {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileStore(cfg.Dir, key)
	case BackendMemory:
		return NewMemoryStore(key)
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("%w: redis backend needs a url", ErrUnknownBackend)
		}
		return NewRedisStore(cfg.RedisURL, key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
