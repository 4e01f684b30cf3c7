package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/favourami/eventplanner/internal/core/domain"
)

// MinPasswordLength is the acceptance threshold for new passwords. It matches
// the length criterion of the strength score.
const MinPasswordLength = 8

const specialCharacters = `!@#$%^&*(),.?":{}|<>`

// IsAcceptablePassword reports whether p meets the minimum length.
func IsAcceptablePassword(p string) bool {
	return utf8.RuneCountInString(p) >= MinPasswordLength
}

// PasswordStrength scores p against five independent criteria: length,
// digit, uppercase, lowercase and special character. It is cheap enough to
// run on every keystroke.
func PasswordStrength(p string) domain.PasswordStrength {
	met := 0
	if utf8.RuneCountInString(p) >= MinPasswordLength {
		met++
	}
	if strings.ContainsAny(p, "0123456789") {
		met++
	}
	if strings.ContainsAny(p, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		met++
	}
	if strings.ContainsAny(p, "abcdefghijklmnopqrstuvwxyz") {
		met++
	}
	if strings.ContainsAny(p, specialCharacters) {
		met++
	}
	return domain.StrengthFromCriteria(met)
}
