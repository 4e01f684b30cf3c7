package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const kvPrefix = "planner:kv:"

// KeyValueStore implements ports.KeyValueStore on Redis. Values never
// expire.
// Key format: planner:kv:<key>
type KeyValueStore struct {
	client *redis.Client
}

func NewKeyValueStore(client *redis.Client) *KeyValueStore {
	return &KeyValueStore{client: client}
}

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, kvKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, kvKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *KeyValueStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, kvKey(key)).Err(); err != nil {
		return fmt.Errorf("kv remove %s: %w", key, err)
	}
	return nil
}

func kvKey(key string) string { return kvPrefix + key }
