package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/ports"
)

// LogSender is the placeholder delivery channel: it records the invitation
// in the log and reports success.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, inv ports.Invitation) error {
	s.log.Info().
		Str("event_id", inv.EventID).
		Str("event", inv.EventName).
		Str("guest", inv.GuestName).
		Str("email", inv.GuestEmail).
		Str("date", inv.Date).
		Str("time", inv.Time).
		Msg("invitation sent")
	return nil
}
