package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix is prepended to every document key in Redis.
const RedisKeyPrefix = "keydraft:"

// RedisStore keeps the document in one Redis string.
type RedisStore struct {
	client *redis.Client
	key    string
	owned  bool
}

// NewRedisStore connects to the Redis server at url. A value that is not a
// redis:// URL is used as a plain host:port address.
func NewRedisStore(url, key string) (*RedisStore, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	s := NewRedisStoreWithClient(redis.NewClient(opt), key)
	s.owned = true
	return s, nil
}

// NewRedisStoreWithClient creates a store over an existing client. Close
// leaves the client open.
func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: RedisKeyPrefix + key}
}

// Key returns the Redis key the document is stored under.
func (s *RedisStore) Key() string {
	return s.key
}

// Load fetches the document.
func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis %s: %w", s.key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, nil
}

// Save stores the document without expiry.
func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client if the store created it.
func (s *RedisStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
