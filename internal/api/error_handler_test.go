package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domain.NewValidationError("email", "must be a valid email"), http.StatusUnprocessableEntity},
		{"account exists", fmt.Errorf("sign up: %w", domain.ErrAccountExists), http.StatusConflict},
		{"weak credential", domain.ErrWeakCredential, http.StatusUnprocessableEntity},
		{"bad credential", fmt.Errorf("login: %w", domain.ErrBadCredential), http.StatusUnauthorized},
		{"no session", domain.ErrNoSession, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not found", fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound},
		{"write", fmt.Errorf("create: %w", domain.ErrWrite), http.StatusBadGateway},
		{"echo", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error == "" {
				t.Fatalf("expected error message")
			}
		})
	}
}
