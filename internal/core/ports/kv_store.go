package ports

import "context"

// KeyValueStore is durable string storage addressed by key. It survives
// process restarts.
type KeyValueStore interface {
	// Get returns the value and true, or "" and false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
