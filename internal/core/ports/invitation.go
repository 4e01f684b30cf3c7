package ports

import "context"

// Invitation is one placeholder invitation addressed to a guest.
type Invitation struct {
	EventID    string
	EventName  string
	GuestID    string
	GuestName  string
	GuestEmail string
	Date       string
	Time       string
	Location   string
}

// InvitationSender delivers a single invitation.
type InvitationSender interface {
	Send(ctx context.Context, inv Invitation) error
}
