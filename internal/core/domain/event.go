package domain

import "time"

// Event is a planned occasion owned by exactly one Session User.
type Event struct {
	ID          string
	Name        string
	Description string
	Location    string
	OccursAt    time.Time
	OwnerID     string
}

// Guest is a person invited to one event. Guests are not removed when their
// event is deleted.
type Guest struct {
	ID       string
	FullName string
	Email    string
	EventID  string
	OwnerID  string
}

// CombineDateAndTime joins the calendar day of date with the hour and minute
// of clock, in date's location. The event form picks them separately.
func CombineDateAndTime(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location())
}
