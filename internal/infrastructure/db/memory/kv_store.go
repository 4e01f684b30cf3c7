package memory

import (
	"context"
	"sync"
)

// KeyValueStore is a map-backed ports.KeyValueStore. It does not survive a
// restart; use it where the session may be forgotten.
type KeyValueStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{data: make(map[string]string)}
}

func (s *KeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *KeyValueStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
