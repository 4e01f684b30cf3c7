package domain

// PasswordStrength is one of five ordered bands.
type PasswordStrength int

const (
	StrengthVeryWeak PasswordStrength = iota
	StrengthWeak
	StrengthAverage
	StrengthStrong
	StrengthVeryStrong
)

var strengthLabels = [...]string{
	StrengthVeryWeak:   "Very Weak",
	StrengthWeak:       "Weak",
	StrengthAverage:    "Average",
	StrengthStrong:     "Strong",
	StrengthVeryStrong: "Very Strong",
}

func (s PasswordStrength) String() string {
	if s < StrengthVeryWeak || s > StrengthVeryStrong {
		return "Unknown"
	}
	return strengthLabels[s]
}

// StrengthFromCriteria maps the number of satisfied criteria (0..5) to a band.
// Zero and one criterion are both Very Weak.
func StrengthFromCriteria(met int) PasswordStrength {
	switch {
	case met >= 5:
		return StrengthVeryStrong
	case met == 4:
		return StrengthStrong
	case met == 3:
		return StrengthAverage
	case met == 2:
		return StrengthWeak
	default:
		return StrengthVeryWeak
	}
}
