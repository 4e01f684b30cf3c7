// Package session holds the signed-in user for the lifetime of the process
// and mirrors it to a persistent key-value store.
//
// The login and logout flows are the only writers. Every other component
// reads CurrentUser and subscribes to changes with Subscribe.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

// DefaultKey is the key holding the serialized Session User.
const DefaultKey = "userData"

// Observer is called with the new user (nil when signed out) after every
// change. Observers run on the goroutine that made the change.
type Observer = func(user *domain.SessionUser)

// Cache is the in-memory session plus its durable mirror.
type Cache struct {
	store ports.KeyValueStore
	key   string
	log   zerolog.Logger

	mu        sync.RWMutex
	user      *domain.SessionUser
	version   uint64
	observers map[uint64]Observer
	nextObs   uint64

	// persistMu orders writes to the store so a slow write never lands after
	// a newer one.
	persistMu sync.Mutex
	// pendingRemove is set when a logout could not delete the persisted key.
	pendingRemove bool
}

// NewCache returns an empty (signed out) cache backed by store. An empty key
// selects DefaultKey.
func NewCache(store ports.KeyValueStore, key string, log zerolog.Logger) *Cache {
	if key == "" {
		key = DefaultKey
	}
	return &Cache{
		store:     store,
		key:       key,
		log:       log,
		observers: make(map[uint64]Observer),
	}
}

// CurrentUser returns a copy of the signed-in user, or nil. Before Hydrate
// completes it reports nil.
func (c *Cache) CurrentUser() *domain.SessionUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.user)
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (c *Cache) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

// Hydrate loads the persisted user, if any. Absent or malformed records
// leave the cache signed out. A user set while Hydrate was reading wins over
// the persisted copy.
func (c *Cache) Hydrate(ctx context.Context) {
	c.mu.RLock()
	startVersion := c.version
	c.mu.RUnlock()

	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", c.key).Msg("session hydrate failed, starting signed out")
		return
	}
	if !ok || raw == "" {
		if ok {
			c.dropBlankRecord(ctx)
		}
		c.log.Debug().Msg("no persisted session")
		return
	}

	var u domain.SessionUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil || !u.Valid() {
		c.log.Warn().Err(err).Str("key", c.key).Msg("persisted session is malformed, ignoring")
		return
	}

	c.mu.Lock()
	if c.version != startVersion {
		c.mu.Unlock()
		return
	}
	c.user = &u
	c.version++
	observers := c.snapshotObservers()
	c.mu.Unlock()

	c.log.Info().Str("uid", u.ID).Msg("session restored")
	notify(observers, &u)
}

// SetUser replaces the in-memory user, notifies observers, then persists the
// record. A persist failure is logged; the in-memory user stays
// authoritative for this process.
func (c *Cache) SetUser(ctx context.Context, u domain.SessionUser) {
	record := u
	c.mu.Lock()
	c.user = &record
	c.version++
	version := c.version
	observers := c.snapshotObservers()
	c.mu.Unlock()

	notify(observers, &record)
	c.persist(ctx, version, &record)
}

// ClearUser signs out: the in-memory user is dropped and the persisted
// record removed. Logout never fails from the caller's point of view.
func (c *Cache) ClearUser(ctx context.Context) {
	c.mu.Lock()
	c.user = nil
	c.version++
	version := c.version
	observers := c.snapshotObservers()
	c.mu.Unlock()

	notify(observers, nil)
	c.persist(ctx, version, nil)
}

func (c *Cache) persist(ctx context.Context, version uint64, u *domain.SessionUser) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.RLock()
	stale := version != c.version
	c.mu.RUnlock()
	if stale {
		// a newer SetUser/ClearUser will write its own record
		return
	}

	if u == nil {
		c.removePersisted(ctx)
		return
	}

	data, err := json.Marshal(u)
	if err != nil {
		c.log.Error().Err(err).Msg("encode session")
		return
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		c.log.Warn().Err(err).Str("uid", u.ID).Msg("persist session failed")
		return
	}
	c.pendingRemove = false
}

// removePersisted deletes the key. When the delete fails the record is
// overwritten with an empty value, which Hydrate treats as signed out.
func (c *Cache) removePersisted(ctx context.Context) {
	err := c.store.Remove(ctx, c.key)
	if err == nil {
		c.pendingRemove = false
		return
	}
	c.log.Warn().Err(err).Str("key", c.key).Msg("remove persisted session failed")
	c.pendingRemove = true
	if err := c.store.Set(ctx, c.key, ""); err != nil {
		c.log.Error().Err(err).Str("key", c.key).Msg("blank persisted session failed")
	}
}

// dropBlankRecord deletes a record left blank by an earlier failed logout,
// unless a user has signed in since.
func (c *Cache) dropBlankRecord(ctx context.Context) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.RLock()
	signedIn := c.user != nil
	c.mu.RUnlock()
	if signedIn {
		return
	}
	if err := c.store.Remove(ctx, c.key); err != nil {
		c.log.Warn().Err(err).Str("key", c.key).Msg("remove blank session record failed")
		c.pendingRemove = true
		return
	}
	c.pendingRemove = false
}

// RetryPendingRemoval retries a failed logout delete. It is a no-op when
// nothing is pending.
func (c *Cache) RetryPendingRemoval(ctx context.Context) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	if !c.pendingRemove {
		return
	}
	c.mu.RLock()
	signedIn := c.user != nil
	c.mu.RUnlock()
	if signedIn {
		c.pendingRemove = false
		return
	}
	c.removePersisted(ctx)
}

// snapshotObservers must be called with mu held.
func (c *Cache) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(c.observers))
	for _, fn := range c.observers {
		out = append(out, fn)
	}
	return out
}

func notify(observers []Observer, u *domain.SessionUser) {
	for _, fn := range observers {
		fn(clone(u))
	}
}

func clone(u *domain.SessionUser) *domain.SessionUser {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
