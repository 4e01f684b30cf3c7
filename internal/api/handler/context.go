package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/favourami/eventplanner/internal/api/middleware"
	"github.com/favourami/eventplanner/internal/core/domain"
)

// ctxUser returns the user injected by middleware.RequireSession, or
// domain.ErrNoSession when the route was not guarded.
func ctxUser(c echo.Context) (*domain.SessionUser, error) {
	u, _ := c.Get(middleware.UserKey).(*domain.SessionUser)
	if !u.Valid() {
		return nil, domain.ErrNoSession
	}
	return u, nil
}
