// Package validation holds the client-side input checks run before any
// remote call: the email grammar, password rules, and form validation.
package validation

import (
	"regexp"
	"strings"
)

// emailPattern accepts local-part@domain where the domain is either a
// bracketed dotted quad or a DNS-like name whose TLD has at least two letters.
// An unquoted local part excludes every Unicode space, not only ASCII ones.
var emailPattern = regexp.MustCompile(
	`^(([^<>()\[\]\\.,;:\s\pZ\v\x{FEFF}@"]+(\.[^<>()\[\]\\.,;:\s\pZ\v\x{FEFF}@"]+)*)|(".+"))@` +
		`((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`,
)

// IsValidEmail reports whether s matches the email grammar, ignoring case.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.ToLower(s))
}
