package service

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/session"
	"github.com/favourami/eventplanner/internal/core/validation"
	"github.com/favourami/eventplanner/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// countingIdentity wraps a provider and counts calls.
type countingIdentity struct {
	ports.IdentityProvider
	creates, signIns int
}

func (c *countingIdentity) CreateAccount(ctx context.Context, email, password string) (string, error) {
	c.creates++
	return c.IdentityProvider.CreateAccount(ctx, email, password)
}

func (c *countingIdentity) SignIn(ctx context.Context, email, password string) (string, error) {
	c.signIns++
	return c.IdentityProvider.SignIn(ctx, email, password)
}

// recordingStore wraps a document store, records the order of reads and can
// fail writes.
type recordingStore struct {
	ports.DocumentStore
	mu       sync.Mutex
	calls    []string
	writeErr error
}

func (r *recordingStore) record(s string) {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	r.mu.Unlock()
}

func (r *recordingStore) Get(ctx context.Context, collection, id string) (ports.Document, error) {
	r.record("get " + collection)
	return r.DocumentStore.Get(ctx, collection, id)
}

func (r *recordingStore) Query(ctx context.Context, q ports.Query) ([]ports.Document, error) {
	r.record("query " + q.Collection)
	return r.DocumentStore.Query(ctx, q)
}

func (r *recordingStore) Set(ctx context.Context, collection, id string, fields ports.Fields) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	return r.DocumentStore.Set(ctx, collection, id, fields)
}

func (r *recordingStore) Add(ctx context.Context, collection string, fields ports.Fields) (string, error) {
	if r.writeErr != nil {
		return "", r.writeErr
	}
	return r.DocumentStore.Add(ctx, collection, fields)
}

type fakeQueue struct {
	err  error
	sent []ports.Invitation
}

func (q *fakeQueue) Enqueue(_ context.Context, inv ports.Invitation) error {
	if q.err != nil {
		return q.err
	}
	q.sent = append(q.sent, inv)
	return nil
}

// ---------------------------------------------------------------------------
// Fixture: the whole core over the in-memory backends.
// ---------------------------------------------------------------------------

type fixture struct {
	kv       *memory.KeyValueStore
	docs     *recordingStore
	identity *countingIdentity
	session  *session.Cache
	queue    *fakeQueue

	accounts    ports.AccountService
	events      ports.EventService
	guests      ports.GuestService
	invitations ports.InvitationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zerolog.Nop()
	forms := validation.NewForms()

	f := &fixture{
		kv:       memory.NewKeyValueStore(),
		docs:     &recordingStore{DocumentStore: memory.NewDocumentStore()},
		identity: &countingIdentity{IdentityProvider: memory.NewIdentityProvider(memory.WithIDGenerator(sequentialIDs("uid_")))},
		queue:    &fakeQueue{},
	}
	f.session = session.NewCache(f.kv, session.DefaultKey, log)
	f.accounts = NewAccountService(f.identity, f.docs, f.session, forms, log)
	f.events = NewEventService(f.docs, f.session, forms, log)
	f.guests = NewGuestService(f.docs, f.session, forms, log)
	f.invitations = NewInvitationService(f.docs, f.session, f.queue, log)
	return f
}

func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + strconv.Itoa(n)
	}
}


// signIn creates an account for name/email and logs in.
func (f *fixture) signIn(t *testing.T, name, email string) *domain.SessionUser {
	t.Helper()
	ctx := context.Background()
	if _, err := f.accounts.SignUp(ctx, ports.SignUpInput{Name: name, Email: email, Password: "Abcdef1!"}); err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	u, err := f.accounts.Login(ctx, email, "Abcdef1!")
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return u
}

func newFixtureLog() zerolog.Logger { return zerolog.Nop() }
