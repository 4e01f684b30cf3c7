package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/infrastructure/db/memory"
)

func TestEventListBinder_FollowsSessionAndStore(t *testing.T) {
	f := newFixture(t)
	store := f.docs.DocumentStore.(*memory.DocumentStore)
	ctx, cancel := context.WithCancel(context.Background())

	b := NewEventListBinder(store, nil, nil, zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- b.FollowSession(ctx, f.session) }()

	// signed out: nothing subscribed
	assert.Never(t, func() bool { return store.Subscriptions() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	f.signIn(t, "Jo", "jo@example.com")
	require.Eventually(t, func() bool { return store.Subscriptions() == 1 && b.Loaded() }, time.Second, 5*time.Millisecond)

	_, err := f.events.Create(context.Background(), partyInput())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(b.Items()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Birthday", b.Items()[0].Name)
	assert.Equal(t, "18:30", b.Items()[0].Display.Time)

	store.Fail(ports.CollectionEvents, errors.New("permission denied"))
	require.Eventually(t, func() bool { return b.Err() != nil }, time.Second, 5*time.Millisecond)
	assert.Len(t, b.Items(), 1, "last-known-good list is kept")
	assert.ErrorIs(t, b.Err(), domain.ErrSubscription)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 0, store.Subscriptions())
}

func TestGuestListBinder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(t, "Jo", "jo@example.com")
	eventID, err := f.events.Create(ctx, partyInput())
	require.NoError(t, err)

	var got [][]domain.Guest
	b := NewGuestListBinder(f.docs, f.session.CurrentUser().ID, func(g []domain.Guest) { got = append(got, g) }, nil, zerolog.Nop())
	require.NoError(t, b.Activate(ctx, eventID))
	defer b.Deactivate()

	_, err = f.guests.Add(ctx, eventID, ports.GuestInput{FullName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Empty(t, got[0])
	assert.Equal(t, "Ada", got[1][0].FullName)
}

func TestGuestListBinderKeepsOwnersGuestsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(t, "Jo", "jo@example.com")
	eventID, err := f.events.Create(ctx, partyInput())
	require.NoError(t, err)

	_, err = f.docs.Add(ctx, ports.CollectionGuests, ports.Fields{
		"full_name": "Mallory", "email": "m@example.com", "event_id": eventID, "owner_id": "someone_else",
	})
	require.NoError(t, err)
	_, err = f.guests.Add(ctx, eventID, ports.GuestInput{FullName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	b := NewGuestListBinder(f.docs, f.session.CurrentUser().ID, nil, nil, zerolog.Nop())
	require.NoError(t, b.Activate(ctx, eventID))
	defer b.Deactivate()

	listed, err := f.guests.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, b.Items(), 1)
	assert.Equal(t, "Ada", b.Items()[0].FullName)
	assert.Equal(t, listed, b.Items())
}
