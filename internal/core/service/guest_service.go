package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/validation"
)

type guestService struct {
	docs    ports.DocumentStore
	session SessionReader
	forms   *validation.Forms
	log     zerolog.Logger
}

func NewGuestService(docs ports.DocumentStore, session SessionReader, forms *validation.Forms, log zerolog.Logger) ports.GuestService {
	return &guestService{docs: docs, session: session, forms: forms, log: log}
}

// Add creates a guest of eventID. The event must exist and belong to the
// signed-in user.
func (s *guestService) Add(ctx context.Context, eventID string, in ports.GuestInput) (string, error) {
	user, err := requireUser(s.session)
	if err != nil {
		return "", err
	}
	if err := s.forms.Struct(in); err != nil {
		return "", err
	}
	if _, err := loadOwned(ctx, s.docs, ports.CollectionEvents, eventID, user.ID); err != nil {
		return "", fmt.Errorf("add guest: %w", err)
	}

	fields := guestFields(in)
	fields[fieldEventID] = eventID
	fields[fieldOwnerID] = user.ID
	id, err := s.docs.Add(ctx, ports.CollectionGuests, fields)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", eventID).Msg("failed to add guest")
		return "", writeFailure("add guest", err)
	}

	s.log.Info().Str("guest_id", id).Str("event_id", eventID).Msg("guest added")
	return id, nil
}

func (s *guestService) Update(ctx context.Context, id string, in ports.GuestInput) error {
	user, err := requireUser(s.session)
	if err != nil {
		return err
	}
	if err := s.forms.Struct(in); err != nil {
		return err
	}
	if _, err := loadOwned(ctx, s.docs, ports.CollectionGuests, id, user.ID); err != nil {
		return fmt.Errorf("update guest: %w", err)
	}
	if err := s.docs.Update(ctx, ports.CollectionGuests, id, guestFields(in)); err != nil {
		return writeFailure("update guest", err)
	}
	return nil
}

func (s *guestService) Delete(ctx context.Context, id string) error {
	user, err := requireUser(s.session)
	if err != nil {
		return err
	}
	if _, err := loadOwned(ctx, s.docs, ports.CollectionGuests, id, user.ID); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	if err := s.docs.Delete(ctx, ports.CollectionGuests, id); err != nil {
		return writeFailure("delete guest", err)
	}
	s.log.Info().Str("guest_id", id).Msg("guest deleted")
	return nil
}

func (s *guestService) ListByEvent(ctx context.Context, eventID string) ([]domain.Guest, error) {
	user, err := requireUser(s.session)
	if err != nil {
		return nil, err
	}
	return listGuests(ctx, s.docs, eventID, user.ID)
}

// listGuests queries by event and keeps the owner's guests only.
func listGuests(ctx context.Context, docs ports.DocumentStore, eventID, ownerID string) ([]domain.Guest, error) {
	res, err := docs.Query(ctx, ports.Query{Collection: ports.CollectionGuests, Field: fieldEventID, Value: eventID})
	if err != nil {
		return nil, fmt.Errorf("list guests of %s: %w", eventID, err)
	}
	return ownedGuests(Guests(res), ownerID), nil
}

func ownedGuests(all []domain.Guest, ownerID string) []domain.Guest {
	out := all[:0]
	for _, g := range all {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out
}
