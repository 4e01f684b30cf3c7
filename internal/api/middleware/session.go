package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/favourami/eventplanner/internal/core/domain"
)

// UserKey is the echo context key holding the *domain.SessionUser.
const UserKey = "user"

// SessionReader is the read side of the session cache.
type SessionReader interface {
	CurrentUser() *domain.SessionUser
}

// RequireSession rejects the request with domain.ErrNoSession unless a user
// is signed in, and with domain.ErrInvalidToken unless it carries a bearer
// token issued to that user. The user is injected into the context.
func RequireSession(s SessionReader, tokens *Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, err := authorize(c, s, tokens)
			if err != nil {
				return err
			}
			c.Set(UserKey, u)
			return next(c)
		}
	}
}

// OptionalSession injects the session user when RequireSession would, and
// otherwise runs the handler with no user.
func OptionalSession(s SessionReader, tokens *Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if u, err := authorize(c, s, tokens); err == nil {
				c.Set(UserKey, u)
			}
			return next(c)
		}
	}
}

func authorize(c echo.Context, s SessionReader, tokens *Tokens) (*domain.SessionUser, error) {
	u := s.CurrentUser()
	if !u.Valid() {
		return nil, domain.ErrNoSession
	}

	scheme, raw, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
		return nil, domain.ErrInvalidToken
	}
	sub, err := tokens.Subject(raw)
	if err != nil || sub != u.ID {
		// issued to an earlier session user, or not ours at all
		return nil, domain.ErrInvalidToken
	}
	return u, nil
}
