package service

import (
	"sort"
	"strings"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

// Document field names.
const (
	fieldUID         = "uid"
	fieldName        = "name"
	fieldEmail       = "email"
	fieldDescription = "description"
	fieldLocation    = "location"
	fieldOccursAt    = "occurs_at"
	fieldOwnerID     = "owner_id"
	fieldFullName    = "full_name"
	fieldEventID     = "event_id"
)

func profileFields(p domain.Profile) ports.Fields {
	return ports.Fields{fieldUID: p.UID, fieldName: p.Name, fieldEmail: p.Email}
}

func profileFromDocument(d ports.Document) domain.Profile {
	uid := d.String(fieldUID)
	if uid == "" {
		uid = d.ID
	}
	return domain.Profile{UID: uid, Name: d.String(fieldName), Email: d.String(fieldEmail)}
}

func eventFields(in ports.EventInput) ports.Fields {
	return ports.Fields{
		fieldName:        strings.TrimSpace(in.Name),
		fieldDescription: strings.TrimSpace(in.Description),
		fieldLocation:    strings.TrimSpace(in.Location),
		fieldOccursAt:    domain.CombineDateAndTime(in.Date, in.Time),
	}
}

// EventFromDocument converts a stored event.
func EventFromDocument(d ports.Document) domain.Event {
	return domain.Event{
		ID:          d.ID,
		Name:        d.String(fieldName),
		Description: d.String(fieldDescription),
		Location:    d.String(fieldLocation),
		OccursAt:    d.Time(fieldOccursAt),
		OwnerID:     d.String(fieldOwnerID),
	}
}

// NewEventView adds the display pair to e.
func NewEventView(e domain.Event) ports.EventView {
	return ports.EventView{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		OccursAt:    e.OccursAt,
		Display:     domain.FormatDateAndTime(e.OccursAt),
	}
}

// EventViews converts a result set, soonest first.
func EventViews(docs []ports.Document) []ports.EventView {
	out := make([]ports.EventView, 0, len(docs))
	for _, d := range docs {
		out = append(out, NewEventView(EventFromDocument(d)))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccursAt.Equal(out[j].OccursAt) {
			return out[i].OccursAt.Before(out[j].OccursAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func guestFields(in ports.GuestInput) ports.Fields {
	return ports.Fields{
		fieldFullName: strings.TrimSpace(in.FullName),
		fieldEmail:    strings.TrimSpace(in.Email),
	}
}

// GuestFromDocument converts a stored guest.
func GuestFromDocument(d ports.Document) domain.Guest {
	return domain.Guest{
		ID:       d.ID,
		FullName: d.String(fieldFullName),
		Email:    d.String(fieldEmail),
		EventID:  d.String(fieldEventID),
		OwnerID:  d.String(fieldOwnerID),
	}
}

// Guests converts a result set, ordered by name.
func Guests(docs []ports.Document) []domain.Guest {
	out := make([]domain.Guest, 0, len(docs))
	for _, d := range docs {
		out = append(out, GuestFromDocument(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].FullName), strings.ToLower(out[j].FullName)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}
