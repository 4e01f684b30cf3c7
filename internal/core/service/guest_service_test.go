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

func TestGuests_AddEditDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jo := f.signIn(t, "Jo", "jo@example.com")
	eventID, err := f.events.Create(ctx, partyInput())
	require.NoError(t, err)

	id, err := f.guests.Add(ctx, eventID, ports.GuestInput{FullName: " Ada Obi ", Email: "ada@example.com"})
	require.NoError(t, err)

	list, err := f.guests.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.Guest{ID: id, FullName: "Ada Obi", Email: "ada@example.com", EventID: eventID, OwnerID: jo.ID}, list[0])

	require.NoError(t, f.guests.Update(ctx, id, ports.GuestInput{FullName: "Ada O.", Email: "ada@work.example.com"}))
	list, err = f.guests.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, "Ada O.", list[0].FullName)
	assert.Equal(t, eventID, list[0].EventID, "update keeps the event reference")

	require.NoError(t, f.guests.Delete(ctx, id))
	list, err = f.guests.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGuests_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(t, "Jo", "jo@example.com")
	eventID, err := f.events.Create(ctx, partyInput())
	require.NoError(t, err)

	_, err = f.guests.Add(ctx, eventID, ports.GuestInput{FullName: "Ada", Email: "ada@"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)

	_, err = f.guests.Add(ctx, eventID, ports.GuestInput{Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGuests_EventMustExist(t *testing.T) {
	f := newFixture(t)
	f.signIn(t, "Jo", "jo@example.com")

	_, err := f.guests.Add(context.Background(), "missing", ports.GuestInput{FullName: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGuests_OtherOwnerCannotEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(t, "Jo", "jo@example.com")
	eventID, err := f.events.Create(ctx, partyInput())
	require.NoError(t, err)
	id, err := f.guests.Add(ctx, eventID, ports.GuestInput{FullName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	f.signIn(t, "Sam", "sam@example.com")
	assert.ErrorIs(t, f.guests.Delete(ctx, id), domain.ErrForbidden)
	list, err := f.guests.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
