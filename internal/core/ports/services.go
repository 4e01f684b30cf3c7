package ports

import (
	"context"
	"time"

	"github.com/favourami/eventplanner/internal/core/domain"
)

// SignUpInput carries the create-account form.
type SignUpInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,planner_email"`
	Password string `validate:"required,planner_password"`
}

// AccountService orchestrates sign-up, login and logout.
type AccountService interface {
	SignUp(ctx context.Context, in SignUpInput) (string, error)
	Login(ctx context.Context, email, password string) (*domain.SessionUser, error)
	Logout(ctx context.Context)
	CurrentUser() *domain.SessionUser
}

// EventInput carries the create/edit event form. Date and Time are picked
// separately and combined on save.
type EventInput struct {
	Name        string    `validate:"required"`
	Description string    `validate:"required"`
	Location    string    `validate:"required"`
	Date        time.Time `validate:"required"`
	Time        time.Time `validate:"required"`
}

// EventView is an event with its display-ready date/time pair.
type EventView struct {
	ID          string
	Name        string
	Description string
	Location    string
	OccursAt    time.Time
	Display     domain.DisplayDateTime
}

// EventDetail is the event screen: the event followed by its guests.
type EventDetail struct {
	Event  EventView
	Guests []domain.Guest
}

// EventService manages the signed-in user's events.
type EventService interface {
	Create(ctx context.Context, in EventInput) (string, error)
	Update(ctx context.Context, id string, in EventInput) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*EventView, error)
	List(ctx context.Context) ([]EventView, error)
	Detail(ctx context.Context, id string) (*EventDetail, error)
}

// GuestInput carries the add/edit guest form.
type GuestInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,planner_email"`
}

// GuestService manages the guest list of an event.
type GuestService interface {
	Add(ctx context.Context, eventID string, in GuestInput) (string, error)
	Update(ctx context.Context, id string, in GuestInput) error
	Delete(ctx context.Context, id string) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.Guest, error)
}

// InvitationView is the rendered invitation card of an event.
type InvitationView struct {
	Greeting    string
	Headline    string
	EventName   string
	Description string
	Date        string
	Time        string
	Location    string
}

// InvitationService renders invitations and queues placeholder deliveries.
type InvitationService interface {
	Render(ctx context.Context, eventID string) (*InvitationView, error)
	SendAll(ctx context.Context, eventID string) (int, error)
}

// ShopService browses gift ideas.
type ShopService interface {
	Browse(ctx context.Context, category domain.ShopCategory, query string) ([]domain.ShopItem, error)
}
