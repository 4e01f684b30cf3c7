package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

func TestInvitations_Render(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(t, "Jo", "jo@example.com")
	id, err := f.events.Create(ctx, partyInput())
	require.NoError(t, err)

	v, err := f.invitations.Render(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &ports.InvitationView{
		Greeting:    "Hello!",
		Headline:    "We are having a celebration!",
		EventName:   "Birthday",
		Description: "Cake and friends",
		Date:        "Saturday 14 March 2026",
		Time:        "18:30",
		Location:    "Lagos",
	}, v)
}

func TestInvitations_RenderWithoutTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jo := f.signIn(t, "Jo", "jo@example.com")
	require.NoError(t, f.docs.Set(ctx, ports.CollectionEvents, "legacy", ports.Fields{
		"name":     "Old event",
		"owner_id": jo.ID,
	}))

	v, err := f.invitations.Render(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, domain.DateUnavailable, v.Date)
	assert.Equal(t, domain.TimeUnavailable, v.Time)
}

func TestInvitations_SendAllQueuesOnePerGuest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(t, "Jo", "jo@example.com")
	id, err := f.events.Create(ctx, partyInput())
	require.NoError(t, err)
	for _, name := range []string{"Ada", "Bola", "Chi"} {
		_, err := f.guests.Add(ctx, id, ports.GuestInput{FullName: name, Email: name + "@example.com"})
		require.NoError(t, err)
	}

	n, err := f.invitations.SendAll(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, f.queue.sent, 3)
	assert.Equal(t, "Ada", f.queue.sent[0].GuestName)
	assert.Equal(t, "Birthday", f.queue.sent[0].EventName)
	assert.Equal(t, "18:30", f.queue.sent[0].Time)
}

func TestInvitations_QueueFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(t, "Jo", "jo@example.com")
	id, err := f.events.Create(ctx, partyInput())
	require.NoError(t, err)
	_, err = f.guests.Add(ctx, id, ports.GuestInput{FullName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	f.queue.err = errors.New("queue closed")
	n, err := f.invitations.SendAll(ctx, id)
	assert.Error(t, err)
	assert.Zero(t, n)
}
