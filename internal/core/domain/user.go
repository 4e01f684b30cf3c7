package domain

import "strings"

// SessionUser is the locally cached record of the signed-in account.
// Every write replaces the whole record.
type SessionUser struct {
	ID          string `json:"uid"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
}

// Valid reports whether the record carries a usable identifier.
func (u *SessionUser) Valid() bool {
	return u != nil && strings.TrimSpace(u.ID) != ""
}

// FirstName returns the first word of the display name, or "Guest" when
// there is no user or no name.
func (u *SessionUser) FirstName() string {
	if u == nil {
		return "Guest"
	}
	fields := strings.Fields(u.DisplayName)
	if len(fields) == 0 {
		return "Guest"
	}
	return fields[0]
}

// Profile is the document stored in the "users" collection, keyed by the
// identity provider's identifier.
type Profile struct {
	UID   string
	Name  string
	Email string
}

// SessionUser converts the stored profile into the cached session record.
func (p Profile) SessionUser() *SessionUser {
	return &SessionUser{ID: p.UID, DisplayName: p.Name, Email: p.Email}
}
