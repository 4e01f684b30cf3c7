package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	ok := Check{Name: "mongodb", Probe: func(context.Context) error { return nil }}
	down := Check{Name: "redis", Probe: func(context.Context) error { return errors.New("connection refused") }}

	tests := []struct {
		name       string
		checks     []Check
		wantStatus int
		wantBody   string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all healthy", []Check{ok}, http.StatusOK, "ok"},
		{"one down", []Check{ok, down}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(tt.checks...).Readiness(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.wantBody {
				t.Errorf("expected status %q, got %q", tt.wantBody, body.Status)
			}
		})
	}
}
