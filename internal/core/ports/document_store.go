package ports

import (
	"context"
	"time"
)

const (
	CollectionUsers  = "users"
	CollectionEvents = "events"
	CollectionGuests = "guests"
)

// Fields holds the raw field values of a document.
type Fields map[string]any

// Document is one stored record addressed by its generated identifier.
// Timestamps are delivered as time.Time; adapters convert their native
// representation before handing documents out.
type Document struct {
	ID     string
	Fields Fields
}

// String returns the named field as a string, or "" when absent or of
// another type.
func (d Document) String(key string) string {
	s, _ := d.Fields[key].(string)
	return s
}

// Time returns the named field as a time, or the zero time.
func (d Document) Time(key string) time.Time {
	t, _ := d.Fields[key].(time.Time)
	return t
}

// Query selects the documents of one collection whose Field equals Value.
type Query struct {
	Collection string
	Field      string
	Value      any
}

// SnapshotFunc receives the full result set of a query.
type SnapshotFunc func(docs []Document)

// ErrorFunc receives a failure of an established subscription. No further
// snapshots follow it.
type ErrorFunc func(err error)

// Subscription is a standing query. Close is idempotent; once it returns no
// further callbacks are delivered. Close must not be called from inside a
// callback of the same subscription.
type Subscription interface {
	Close() error
}

// DocumentStore is the remote source of truth for users, events and guests.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, q Query) ([]Document, error)
	// Set creates or replaces the document with the given identifier.
	Set(ctx context.Context, collection, id string, fields Fields) error
	// Add creates a document under a generated identifier and returns it.
	Add(ctx context.Context, collection string, fields Fields) (string, error)
	// Update merges fields into an existing document.
	Update(ctx context.Context, collection, id string, fields Fields) error
	Delete(ctx context.Context, collection, id string) error
	// Subscribe delivers the current result set of q, then a new full result
	// set after every change to the collection, until the subscription is
	// closed or ctx ends.
	Subscribe(ctx context.Context, q Query, onSnapshot SnapshotFunc, onError ErrorFunc) (Subscription, error)
}
