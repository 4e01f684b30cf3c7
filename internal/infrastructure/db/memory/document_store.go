// Package memory provides in-process implementations of the storage ports.
// They back the local mode of the app and the tests of everything above the
// adapters.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

// DocumentStore keeps collections in maps. Subscriptions are notified
// synchronously on the writing goroutine, so a snapshot callback must not
// write to the same store.
type DocumentStore struct {
	mu          sync.Mutex
	collections map[string]map[string]ports.Fields
	subs        map[*subscription]struct{}
	seq         uint64
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]ports.Fields),
		subs:        make(map[*subscription]struct{}),
	}
}

func (s *DocumentStore) Get(_ context.Context, collection, id string) (ports.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.collections[collection][id]
	if !ok {
		return ports.Document{}, fmt.Errorf("memory: %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	return ports.Document{ID: id, Fields: copyFields(f)}, nil
}

func (s *DocumentStore) Query(_ context.Context, q ports.Query) ([]ports.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryLocked(q), nil
}

func (s *DocumentStore) Set(_ context.Context, collection, id string, fields ports.Fields) error {
	s.write(collection, func(c map[string]ports.Fields) error {
		c[id] = copyFields(fields)
		return nil
	})
	return nil
}

func (s *DocumentStore) Add(_ context.Context, collection string, fields ports.Fields) (string, error) {
	id := uuid.NewString()
	s.write(collection, func(c map[string]ports.Fields) error {
		c[id] = copyFields(fields)
		return nil
	})
	return id, nil
}

func (s *DocumentStore) Update(_ context.Context, collection, id string, fields ports.Fields) error {
	return s.write(collection, func(c map[string]ports.Fields) error {
		cur, ok := c[id]
		if !ok {
			return fmt.Errorf("memory: update %s/%s: %w", collection, id, domain.ErrNotFound)
		}
		for k, v := range fields {
			cur[k] = v
		}
		return nil
	})
}

// Delete is a no-op for a missing document.
func (s *DocumentStore) Delete(_ context.Context, collection, id string) error {
	return s.write(collection, func(c map[string]ports.Fields) error {
		delete(c, id)
		return nil
	})
}

// Subscribe delivers the current result set before returning, then a new one
// after every write to q.Collection.
func (s *DocumentStore) Subscribe(ctx context.Context, q ports.Query, onSnapshot ports.SnapshotFunc, onError ports.ErrorFunc) (ports.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sub := &subscription{store: s, query: q, onSnapshot: onSnapshot, onError: onError}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.seq++
	seq, docs := s.seq, s.queryLocked(q)
	s.mu.Unlock()

	sub.deliver(seq, docs)
	stop := context.AfterFunc(ctx, func() { _ = sub.Close() })
	sub.mu.Lock()
	sub.stop = stop
	sub.mu.Unlock()
	return sub, nil
}

// Fail ends every open subscription on collection with err, the way a
// remote listener is revoked.
func (s *DocumentStore) Fail(collection string, err error) {
	s.mu.Lock()
	var hit []*subscription
	for sub := range s.subs {
		if sub.query.Collection == collection {
			hit = append(hit, sub)
			delete(s.subs, sub)
		}
	}
	s.mu.Unlock()

	for _, sub := range hit {
		sub.fail(err)
	}
}

// Subscriptions returns the number of open subscriptions.
func (s *DocumentStore) Subscriptions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *DocumentStore) write(collection string, fn func(c map[string]ports.Fields) error) error {
	type pending struct {
		sub  *subscription
		docs []ports.Document
	}

	s.mu.Lock()
	c, ok := s.collections[collection]
	if !ok {
		c = make(map[string]ports.Fields)
		s.collections[collection] = c
	}
	if err := fn(c); err != nil {
		s.mu.Unlock()
		return err
	}
	s.seq++
	seq := s.seq
	var out []pending
	for sub := range s.subs {
		if sub.query.Collection == collection {
			out = append(out, pending{sub: sub, docs: s.queryLocked(sub.query)})
		}
	}
	s.mu.Unlock()

	for _, p := range out {
		p.sub.deliver(seq, p.docs)
	}
	return nil
}

func (s *DocumentStore) queryLocked(q ports.Query) []ports.Document {
	c := s.collections[q.Collection]
	out := make([]ports.Document, 0, len(c))
	for id, f := range c {
		if v, ok := f[q.Field]; ok && reflect.DeepEqual(v, q.Value) {
			out = append(out, ports.Document{ID: id, Fields: copyFields(f)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *DocumentStore) remove(sub *subscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

type subscription struct {
	store      *DocumentStore
	query      ports.Query
	onSnapshot ports.SnapshotFunc
	onError    ports.ErrorFunc
	stop       func() bool

	// mu is held while a callback runs, so Close waits for it.
	mu      sync.Mutex
	closed  bool
	lastSeq uint64
}

func (sub *subscription) deliver(seq uint64, docs []ports.Document) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed || seq <= sub.lastSeq {
		return
	}
	sub.lastSeq = seq
	sub.onSnapshot(docs)
}

func (sub *subscription) fail(err error) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	if sub.onError != nil {
		sub.onError(err)
	}
}

func (sub *subscription) Close() error {
	sub.mu.Lock()
	already := sub.closed
	sub.closed = true
	stop := sub.stop
	sub.mu.Unlock()

	if !already {
		sub.store.remove(sub)
	}
	if stop != nil {
		stop()
	}
	return nil
}

func copyFields(f ports.Fields) ports.Fields {
	out := make(ports.Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
