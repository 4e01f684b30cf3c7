// Package livelist binds a live document-store query to local list state.
//
// A Binder owns at most one subscription at any instant. Changing the filter
// value closes the old subscription before the new one opens, and every
// snapshot replaces the list wholesale. Run and FollowSession pair
// activation with deactivation so the subscription is released on every
// exit path.
package livelist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

// ErrInactive is returned when the filter is changed on a binder that is not
// active.
var ErrInactive = errors.New("livelist: binder is not active")

// Transform turns a raw result set into list items. It may sort; the store
// gives no ordering guarantee.
type Transform[T any] func(docs []ports.Document) []T

// Options configures a Binder.
type Options[T any] struct {
	// Collection and Field form the equality query; the filter value is
	// supplied at activation.
	Collection string
	Field      string
	Transform  Transform[T]
	// OnChange receives every new list. Optional.
	OnChange func(items []T)
	// OnError receives subscription failures as non-fatal notices. The list
	// keeps its last-known-good state. Optional.
	OnError func(err error)
	Log     zerolog.Logger
}

// Binder materializes one live query into list state.
type Binder[T any] struct {
	store ports.DocumentStore
	opts  Options[T]

	// opMu serializes activation and filter changes so two subscriptions
	// never overlap.
	opMu sync.Mutex

	mu      sync.Mutex
	active  bool
	filter  string
	gen     uint64
	sub     ports.Subscription
	items   []T
	loaded  bool
	lastErr error
}

func New[T any](store ports.DocumentStore, opts Options[T]) *Binder[T] {
	return &Binder[T]{store: store, opts: opts}
}

// Activate marks the binder active and subscribes for value. An empty value
// means the filter is not known yet; no subscription is opened until
// SetFilter supplies one.
func (b *Binder[T]) Activate(ctx context.Context, value string) error {
	b.mu.Lock()
	b.active = true
	b.mu.Unlock()
	return b.SetFilter(ctx, value)
}

// SetFilter switches the query to value. The previous subscription, if any,
// is closed first and a list loaded for another value is emptied, with
// OnChange told about it. Setting the current value again is a no-op.
func (b *Binder[T]) SetFilter(ctx context.Context, value string) error {
	b.opMu.Lock()
	defer b.opMu.Unlock()

	b.mu.Lock()
	if !b.active {
		b.mu.Unlock()
		return ErrInactive
	}
	if value == b.filter && (b.sub != nil || value == "") {
		b.mu.Unlock()
		return nil
	}
	old := b.sub
	b.sub = nil
	b.gen++
	gen := b.gen
	// The list belongs to the previous filter value; last-known-good only
	// holds while the value stays the same.
	cleared := false
	if value != b.filter {
		cleared = b.loaded || len(b.items) > 0
		b.items = nil
		b.loaded = false
		b.lastErr = nil
	}
	b.filter = value
	b.mu.Unlock()

	if old != nil {
		b.closeSub(old)
	}
	if cleared && b.opts.OnChange != nil {
		b.opts.OnChange([]T{})
	}
	if value == "" {
		return nil
	}

	q := ports.Query{Collection: b.opts.Collection, Field: b.opts.Field, Value: value}
	sub, err := b.store.Subscribe(ctx, q,
		func(docs []ports.Document) { b.deliver(gen, docs) },
		func(err error) { b.fail(gen, err) },
	)
	if err != nil {
		err = fmt.Errorf("%w: %s where %s = %s: %v", domain.ErrSubscription, q.Collection, q.Field, value, err)
		b.mu.Lock()
		b.lastErr = err
		b.mu.Unlock()
		b.report(err)
		return err
	}

	b.mu.Lock()
	if gen != b.gen || !b.active {
		b.mu.Unlock()
		b.closeSub(sub)
		return nil
	}
	b.sub = sub
	b.mu.Unlock()

	b.opts.Log.Debug().
		Str("collection", q.Collection).
		Str("field", q.Field).
		Str("value", value).
		Msg("live list subscribed")
	return nil
}

// Deactivate closes the subscription. Snapshots that arrive afterwards are
// dropped. Safe to call more than once.
func (b *Binder[T]) Deactivate() {
	b.opMu.Lock()
	defer b.opMu.Unlock()

	b.mu.Lock()
	b.active = false
	old := b.sub
	b.sub = nil
	b.gen++
	b.filter = ""
	b.mu.Unlock()

	if old != nil {
		b.closeSub(old)
		b.opts.Log.Debug().Str("collection", b.opts.Collection).Msg("live list unsubscribed")
	}
}

// Run activates the binder, applies every filter value received from
// filters, and deactivates when ctx ends or filters is closed.
func (b *Binder[T]) Run(ctx context.Context, filters <-chan string) error {
	if err := b.Activate(ctx, ""); err != nil {
		return err
	}
	defer b.Deactivate()

	for {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-filters:
			if !ok {
				return nil
			}
			// subscription failures were already reported via OnError
			_ = b.SetFilter(ctx, v)
		}
	}
}

// SessionSource is the read side of the session cache.
type SessionSource interface {
	CurrentUser() *domain.SessionUser
	Subscribe(fn func(user *domain.SessionUser)) (unsubscribe func())
}

// FollowSession runs the binder with the signed-in user's identifier as the
// filter value, re-subscribing whenever the user changes. It blocks until
// ctx ends.
func (b *Binder[T]) FollowSession(ctx context.Context, src SessionSource) error {
	filters := make(chan string, 1)
	var pushMu sync.Mutex
	push := func(u *domain.SessionUser) {
		id := ""
		if u != nil {
			id = u.ID
		}
		pushMu.Lock()
		defer pushMu.Unlock()
		// only the latest value matters
		select {
		case <-filters:
		default:
		}
		filters <- id
	}

	unsubscribe := src.Subscribe(push)
	defer unsubscribe()
	push(src.CurrentUser())

	return b.Run(ctx, filters)
}

// Items returns a copy of the current list.
func (b *Binder[T]) Items() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}

// Loaded reports whether at least one snapshot has been applied.
func (b *Binder[T]) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Err returns the last subscription failure, if any.
func (b *Binder[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Filter returns the filter value currently applied.
func (b *Binder[T]) Filter() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

func (b *Binder[T]) deliver(gen uint64, docs []ports.Document) {
	items := b.opts.Transform(docs)

	b.mu.Lock()
	if gen != b.gen || !b.active {
		b.mu.Unlock()
		return
	}
	b.items = items
	b.loaded = true
	b.lastErr = nil
	b.mu.Unlock()

	if b.opts.OnChange != nil {
		b.opts.OnChange(items)
	}
}

func (b *Binder[T]) fail(gen uint64, err error) {
	b.mu.Lock()
	if gen != b.gen || !b.active {
		b.mu.Unlock()
		return
	}
	err = fmt.Errorf("%w: %v", domain.ErrSubscription, err)
	b.lastErr = err
	b.mu.Unlock()

	b.report(err)
}

func (b *Binder[T]) report(err error) {
	b.opts.Log.Warn().Err(err).Str("collection", b.opts.Collection).Msg("live list error")
	if b.opts.OnError != nil {
		b.opts.OnError(err)
	}
}

func (b *Binder[T]) closeSub(sub ports.Subscription) {
	if err := sub.Close(); err != nil {
		b.opts.Log.Warn().Err(err).Str("collection", b.opts.Collection).Msg("close subscription")
	}
}
