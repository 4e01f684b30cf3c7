package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"jo@example.com", true},
		{"First.Last@Sub.Example.CO.UK", true},
		{"user@[192.168.0.1]", true},
		{`"quoted local"@example.org`, true},
		{"a@b", false},
		{"no-at-sign.com", false},
		{"a@b.c", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"a\u00a0b@example.com", false},
		{"a\u2003b@example.com", false},
		{"a\ufeffb@example.com", false},
		{"", false},
		{"a@.com", false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, IsValidEmail(tc.in), "IsValidEmail(%q)", tc.in)
	}
}
