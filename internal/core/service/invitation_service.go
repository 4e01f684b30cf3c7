package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/ports"
)

const (
	invitationGreeting = "Hello!"
	invitationHeadline = "We are having a celebration!"
)

// InvitationQueue accepts invitations for asynchronous delivery.
type InvitationQueue interface {
	Enqueue(ctx context.Context, inv ports.Invitation) error
}

type invitationService struct {
	docs    ports.DocumentStore
	session SessionReader
	queue   InvitationQueue
	log     zerolog.Logger
}

func NewInvitationService(docs ports.DocumentStore, session SessionReader, queue InvitationQueue, log zerolog.Logger) ports.InvitationService {
	return &invitationService{docs: docs, session: session, queue: queue, log: log}
}

// Render builds the invitation card of eventID.
func (s *invitationService) Render(ctx context.Context, eventID string) (*ports.InvitationView, error) {
	user, err := requireUser(s.session)
	if err != nil {
		return nil, err
	}
	d, err := loadOwned(ctx, s.docs, ports.CollectionEvents, eventID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("render invitation: %w", err)
	}
	v := NewEventView(EventFromDocument(d))
	return &ports.InvitationView{
		Greeting:    invitationGreeting,
		Headline:    invitationHeadline,
		EventName:   v.Name,
		Description: v.Description,
		Date:        v.Display.Date,
		Time:        v.Display.Time,
		Location:    v.Location,
	}, nil
}

// SendAll queues one invitation per guest of eventID and returns how many
// were queued. Delivery happens later and is not reported back.
func (s *invitationService) SendAll(ctx context.Context, eventID string) (int, error) {
	user, err := requireUser(s.session)
	if err != nil {
		return 0, err
	}
	d, err := loadOwned(ctx, s.docs, ports.CollectionEvents, eventID, user.ID)
	if err != nil {
		return 0, fmt.Errorf("send invitations: %w", err)
	}
	guests, err := listGuests(ctx, s.docs, eventID, user.ID)
	if err != nil {
		return 0, fmt.Errorf("send invitations: %w", err)
	}

	v := NewEventView(EventFromDocument(d))
	queued := 0
	for _, g := range guests {
		inv := ports.Invitation{
			EventID:    eventID,
			EventName:  v.Name,
			GuestID:    g.ID,
			GuestName:  g.FullName,
			GuestEmail: g.Email,
			Date:       v.Display.Date,
			Time:       v.Display.Time,
			Location:   v.Location,
		}
		if err := s.queue.Enqueue(ctx, inv); err != nil {
			return queued, fmt.Errorf("send invitations: queue %s: %w", g.ID, err)
		}
		queued++
	}

	s.log.Info().Str("event_id", eventID).Int("queued", queued).Msg("invitations queued")
	return queued, nil
}
