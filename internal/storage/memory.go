package storage

import (
	"bytes"
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps documents in an in-process cache. Entries never expire.
// Several MemoryStores can share one cache under different keys.
type MemoryStore struct {
	cache *cache.Cache
	key   string
}

// NewMemoryStore creates a store over a new cache.
func NewMemoryStore(key string) (*MemoryStore, error) {
	return NewMemoryStoreWithCache(cache.New(cache.NoExpiration, 0), key)
}

// NewMemoryStoreWithCache creates a store over an existing cache.
func NewMemoryStoreWithCache(c *cache.Cache, key string) (*MemoryStore, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return &MemoryStore{cache: c, key: key}, nil
}

// Load returns a copy of the saved payload.
func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if x, found := s.cache.Get(s.key); found {
		return bytes.Clone(x.([]byte)), nil
	}
	return nil, ErrNotFound
}

// Save stores a copy of data.
func (s *MemoryStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cache.Set(s.key, bytes.Clone(data), cache.NoExpiration)
	return nil
}
