package service

import (
	"errors"

	"github.com/favourami/eventplanner/internal/core/domain"
)

// Notice turns any error from the flows into the single message shown to the
// user. It returns "" for nil.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, domain.ErrWeakCredential):
		return "Password does not meet requirements."
	case errors.Is(err, domain.ErrAccountExists):
		return "An account with this email already exists."
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrBadCredential):
		return "Account not found. Please check credentials or create an account."
	case errors.Is(err, domain.ErrInvalidToken):
		return "Your sign-in has expired. Please log in again."
	case errors.Is(err, domain.ErrAuth):
		return "Authentication failed."
	case errors.Is(err, domain.ErrNoSession):
		return "No user data found. Please log in."
	case errors.Is(err, domain.ErrForbidden):
		return "You do not have access to this item."
	case errors.Is(err, domain.ErrNotFound):
		return "The requested item was not found."
	case errors.Is(err, domain.ErrWrite):
		return "Your changes could not be saved. Please try again."
	case errors.Is(err, domain.ErrSubscription):
		return "Live updates stopped. Reopen this screen to retry."
	default:
		return "An unexpected error occurred."
	}
}
