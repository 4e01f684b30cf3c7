package service

import (
	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/livelist"
	"github.com/favourami/eventplanner/internal/core/ports"
)

// NewEventListBinder binds "events where owner_id = filter". Follow the
// session with FollowSession.
func NewEventListBinder(docs ports.DocumentStore, onChange func([]ports.EventView), onError func(error), log zerolog.Logger) *livelist.Binder[ports.EventView] {
	return livelist.New(docs, livelist.Options[ports.EventView]{
		Collection: ports.CollectionEvents,
		Field:      fieldOwnerID,
		Transform:  EventViews,
		OnChange:   onChange,
		OnError:    onError,
		Log:        log,
	})
}

// NewGuestListBinder binds "guests where event_id = filter", keeping only
// ownerID's guests like the one-shot list does.
func NewGuestListBinder(docs ports.DocumentStore, ownerID string, onChange func([]domain.Guest), onError func(error), log zerolog.Logger) *livelist.Binder[domain.Guest] {
	return livelist.New(docs, livelist.Options[domain.Guest]{
		Collection: ports.CollectionGuests,
		Field:      fieldEventID,
		Transform: func(res []ports.Document) []domain.Guest {
			return ownedGuests(Guests(res), ownerID)
		},
		OnChange: onChange,
		OnError:  onError,
		Log:      log,
	})
}
