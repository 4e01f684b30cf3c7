package domain

import "time"

const (
	DisplayDateLayout = "Monday 2 January 2006"
	DisplayTimeLayout = "15:04"

	DateUnavailable = "Date unavailable"
	TimeUnavailable = "Time unavailable"
)

// DisplayDateTime is the display-ready pair derived from a stored timestamp.
type DisplayDateTime struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// FormatDateAndTime converts a timestamp into its long date and 24h time.
// The zero time yields the "unavailable" placeholders.
func FormatDateAndTime(t time.Time) DisplayDateTime {
	if t.IsZero() {
		return DisplayDateTime{Date: DateUnavailable, Time: TimeUnavailable}
	}
	return DisplayDateTime{
		Date: t.Format(DisplayDateLayout),
		Time: t.Format(DisplayTimeLayout),
	}
}
