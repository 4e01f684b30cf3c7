package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/validation"
)

type eventService struct {
	docs    ports.DocumentStore
	session SessionReader
	forms   *validation.Forms
	log     zerolog.Logger
}

// NewEventService returns an EventService scoped to the signed-in user.
func NewEventService(docs ports.DocumentStore, session SessionReader, forms *validation.Forms, log zerolog.Logger) ports.EventService {
	return &eventService{docs: docs, session: session, forms: forms, log: log}
}

func (s *eventService) Create(ctx context.Context, in ports.EventInput) (string, error) {
	user, err := requireUser(s.session)
	if err != nil {
		return "", err
	}
	if err := s.forms.Struct(in); err != nil {
		return "", err
	}

	fields := eventFields(in)
	fields[fieldOwnerID] = user.ID
	id, err := s.docs.Add(ctx, ports.CollectionEvents, fields)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", user.ID).Msg("failed to create event")
		return "", writeFailure("create event", err)
	}

	s.log.Info().Str("event_id", id).Str("owner_id", user.ID).Msg("event created")
	return id, nil
}

// Update loads the event first; a missing event is ErrNotFound.
func (s *eventService) Update(ctx context.Context, id string, in ports.EventInput) error {
	user, err := requireUser(s.session)
	if err != nil {
		return err
	}
	if err := s.forms.Struct(in); err != nil {
		return err
	}
	if _, err := loadOwned(ctx, s.docs, ports.CollectionEvents, id, user.ID); err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	if err := s.docs.Update(ctx, ports.CollectionEvents, id, eventFields(in)); err != nil {
		s.log.Error().Err(err).Str("event_id", id).Msg("failed to update event")
		return writeFailure("update event", err)
	}

	s.log.Info().Str("event_id", id).Msg("event updated")
	return nil
}

// Delete removes the event only. Its guests stay in the store.
func (s *eventService) Delete(ctx context.Context, id string) error {
	user, err := requireUser(s.session)
	if err != nil {
		return err
	}
	if _, err := loadOwned(ctx, s.docs, ports.CollectionEvents, id, user.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if err := s.docs.Delete(ctx, ports.CollectionEvents, id); err != nil {
		return writeFailure("delete event", err)
	}

	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}

func (s *eventService) Get(ctx context.Context, id string) (*ports.EventView, error) {
	user, err := requireUser(s.session)
	if err != nil {
		return nil, err
	}
	d, err := loadOwned(ctx, s.docs, ports.CollectionEvents, id, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	v := NewEventView(EventFromDocument(d))
	return &v, nil
}

// List is the one-shot form of the event list binder.
func (s *eventService) List(ctx context.Context) ([]ports.EventView, error) {
	user, err := requireUser(s.session)
	if err != nil {
		return nil, err
	}
	docs, err := s.docs.Query(ctx, ports.Query{Collection: ports.CollectionEvents, Field: fieldOwnerID, Value: user.ID})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return EventViews(docs), nil
}

// Detail fetches the event and then its guests, in that order.
func (s *eventService) Detail(ctx context.Context, id string) (*ports.EventDetail, error) {
	user, err := requireUser(s.session)
	if err != nil {
		return nil, err
	}
	d, err := loadOwned(ctx, s.docs, ports.CollectionEvents, id, user.ID)
	if err != nil {
		return nil, fmt.Errorf("event detail: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	guests, err := listGuests(ctx, s.docs, id, user.ID)
	if err != nil {
		return nil, fmt.Errorf("event detail: %w", err)
	}
	return &ports.EventDetail{Event: NewEventView(EventFromDocument(d)), Guests: guests}, nil
}
