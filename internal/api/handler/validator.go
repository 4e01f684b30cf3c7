package handler

import (
	"github.com/favourami/eventplanner/internal/core/validation"
)

// echoValidator lets Echo call c.Validate(req) with the same rules the core
// forms use.
type echoValidator struct {
	forms *validation.Forms
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(forms *validation.Forms) *echoValidator {
	return &echoValidator{forms: forms}
}

// Validate satisfies the echo.Validator interface. Every failing field is
// reported, joined with "; ".
func (ev *echoValidator) Validate(i any) error {
	return ev.forms.Messages(i)
}
