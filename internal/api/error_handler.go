package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to HTTP status codes.
//   - Uses the same single user-facing message as every other surface.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, service.Notice(err)
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, service.Notice(err)
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, service.Notice(err)
	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrWeakCredential):
		return http.StatusUnprocessableEntity, service.Notice(err)
	case errors.Is(err, domain.ErrAuth), errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized, service.Notice(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, service.Notice(err)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, service.Notice(err)
	case errors.Is(err, domain.ErrWrite), errors.Is(err, domain.ErrSubscription):
		log.Warn().Err(err).Str("path", c.Path()).Msg("store failure")
		return http.StatusBadGateway, service.Notice(err)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, service.Notice(err)
}
