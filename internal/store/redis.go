package store

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces engine keys so the store can share a Redis database
// with the backup queue.
const keyPrefix = "rapor:"

// RedisStore persists key-value pairs in Redis under a fixed prefix.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Get returns the value for key and whether the key exists.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set writes value under key without expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, keyPrefix+key, value, 0).Err()
}

// Delete removes key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, keyPrefix+key).Err()
}

// Keys lists every key currently present, prefix stripped.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	return keys, iter.Err()
}

// Snapshot returns every key and its raw value.
func (s *RedisStore) Snapshot(ctx context.Context) (map[string]string, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}

	snap := make(map[string]string, len(keys))
	for _, k := range keys {
		v, found, err := s.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if found {
			snap[k] = v
		}
	}
	return snap, nil
}
