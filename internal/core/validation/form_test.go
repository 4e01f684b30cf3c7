package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

func TestForms_SignUp(t *testing.T) {
	f := NewForms()

	require.NoError(t, f.Struct(ports.SignUpInput{Name: "Jo", Email: "jo@example.com", Password: "Abcdef1!"}))

	err := f.Struct(ports.SignUpInput{Name: "Jo", Email: "jo@example", Password: "Abcdef1!"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)

	err = f.Struct(ports.SignUpInput{Name: "Jo", Email: "jo@example.com", Password: "abcd"})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "password", ve.Field)
	assert.Contains(t, ve.Message, "8")
}

func TestForms_EventRequiresAllFields(t *testing.T) {
	f := NewForms()
	now := time.Now()

	err := f.Struct(ports.EventInput{Name: "Party", Location: "Home", Date: now, Time: now})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "description", ve.Field)

	require.NoError(t, f.Struct(ports.EventInput{Name: "Party", Description: "Cake", Location: "Home", Date: now, Time: now}))
}

func TestForms_MessagesJoinsAllFields(t *testing.T) {
	f := NewForms()
	err := f.Messages(ports.GuestInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fullname is required")
	assert.Contains(t, err.Error(), "email is required")
}

func TestForms_ReportsJSONFieldNames(t *testing.T) {
	type guestForm struct {
		FullName string `json:"full_name" validate:"required"`
		Email    string `json:"email,omitempty" validate:"required,planner_email"`
	}
	err := NewForms().Messages(guestForm{Email: "nope"})
	require.Error(t, err)
	assert.Equal(t, "full_name is required; email must be a valid email", err.Error())
}
