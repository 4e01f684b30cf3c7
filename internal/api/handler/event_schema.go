package handler

import (
	"time"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// eventRequest is the create/edit event form. Date and time are picked
// separately.
type eventRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Date        string `json:"date" validate:"required" example:"2026-03-14"`
	Time        string `json:"time" validate:"required" example:"18:30"`
}

// toInput parses the date and time fields of a validated request. An empty
// field stays zero and is left to the core form rules.
func (r eventRequest) toInput() (ports.EventInput, error) {
	in := ports.EventInput{Name: r.Name, Description: r.Description, Location: r.Location}
	if r.Date != "" {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return in, domain.NewValidationError("date", "must be YYYY-MM-DD")
		}
		in.Date = d
	}
	if r.Time != "" {
		t, err := time.Parse(timeLayout, r.Time)
		if err != nil {
			return in, domain.NewValidationError("time", "must be HH:MM")
		}
		in.Time = t
	}
	return in, nil
}

type eventResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	OccursAt    time.Time `json:"occurs_at"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
}

func toEventResponse(v ports.EventView) eventResponse {
	return eventResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Location:    v.Location,
		OccursAt:    v.OccursAt,
		Date:        v.Display.Date,
		Time:        v.Display.Time,
	}
}

func toEventResponses(vs []ports.EventView) []eventResponse {
	out := make([]eventResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, toEventResponse(v))
	}
	return out
}

type guestRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,planner_email"`
}

type guestResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	EventID  string `json:"event_id"`
}

func toGuestResponses(gs []domain.Guest) []guestResponse {
	out := make([]guestResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, guestResponse{ID: g.ID, FullName: g.FullName, Email: g.Email, EventID: g.EventID})
	}
	return out
}

type eventDetailResponse struct {
	Event  eventResponse   `json:"event"`
	Guests []guestResponse `json:"guests"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// errorResponse documents the error envelope for swagger.
type errorResponse struct {
	Error string `json:"error"`
}
