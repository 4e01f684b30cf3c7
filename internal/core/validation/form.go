package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/favourami/eventplanner/internal/core/domain"
)

// Forms validates form structs tagged with `validate:"..."`. Besides the
// stock tags it understands planner_email and planner_password.
type Forms struct {
	v *validator.Validate
}

func NewForms() *Forms {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report request fields by their JSON name; untagged structs keep the Go name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("planner_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("planner_password", func(fl validator.FieldLevel) bool {
		return IsAcceptablePassword(fl.Field().String())
	})
	return &Forms{v: v}
}

// Struct validates s and returns a *domain.ValidationError naming the first
// failing field, or nil.
func (f *Forms) Struct(s any) error {
	err := f.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return domain.NewValidationError(strings.ToLower(fe.Field()), FieldMessage(fe))
	}
	return domain.NewValidationError("", err.Error())
}

// Messages returns a message for every failing field of s, joined for
// display, or nil when s is valid.
func (f *Forms) Messages(s any) error {
	err := f.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, strings.ToLower(fe.Field())+" "+FieldMessage(fe))
	}
	return domain.NewValidationError("", strings.Join(msgs, "; "))
}

// FieldMessage converts a single field error into a human-readable message.
func FieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email", "planner_email":
		return "must be a valid email"
	case "planner_password":
		return fmt.Sprintf("must be at least %d characters", MinPasswordLength)
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
