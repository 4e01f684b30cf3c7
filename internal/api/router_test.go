package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/api/middleware"
	"github.com/favourami/eventplanner/internal/core/service"
	"github.com/favourami/eventplanner/internal/core/session"
	"github.com/favourami/eventplanner/internal/core/validation"
	"github.com/favourami/eventplanner/internal/infrastructure/db/memory"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	log := zerolog.Nop()
	docs := memory.NewDocumentStore()
	cache := session.NewCache(memory.NewKeyValueStore(), session.DefaultKey, log)
	forms := validation.NewForms()
	tokens, err := middleware.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}

	e, detach := NewRouter(Dependencies{
		Session:  cache,
		Docs:     docs,
		Forms:    forms,
		Accounts: service.NewAccountService(memory.NewIdentityProvider(), docs, cache, forms, log),
		Events:   service.NewEventService(docs, cache, forms, log),
		Guests:   service.NewGuestService(docs, cache, forms, log),
		Shop:     service.NewShopService(nil, nil, log),
		Tokens:   tokens,
		Registry: prometheus.NewRegistry(),
		Log:      log,
	})
	t.Cleanup(detach)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	return doAs(e, "", method, path, body)
}

func doAs(e *echo.Echo, token, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Probes(t *testing.T) {
	e := newTestRouter(t)

	if rec := do(e, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: expected 200, got %d", rec.Code)
	}
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body %s: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestRouter_SignedInFlow(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, http.MethodGet, "/events", "")
	if rec.Code != http.StatusUnauthorized || errorOf(t, rec) != "No user data found. Please log in." {
		t.Fatalf("expected 401 before login, got %d %s", rec.Code, rec.Body.String())
	}

	if rec := do(e, http.MethodPost, "/account/signup", `{"name":"Jo Doe","email":"jo@x.io","password":"Abcdef1!"}`); rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = do(e, http.MethodPost, "/account/login", `{"email":"jo@x.io","password":"Abcdef1!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("expected a token in %s (%v)", rec.Body.String(), err)
	}
	token := login.Token

	// signed in, but the caller does not hold the token
	rec = do(e, http.MethodGet, "/events", "")
	if rec.Code != http.StatusUnauthorized || errorOf(t, rec) != "Your sign-in has expired. Please log in again." {
		t.Fatalf("expected 401 without token, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(e, http.MethodGet, "/account/me", ""); !strings.Contains(rec.Body.String(), `"greeting":"Guest"`) {
		t.Fatalf("me without token must not reveal the user: %s", rec.Body.String())
	}
	if rec := do(e, http.MethodPost, "/account/logout", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("logout without token: expected 401, got %d", rec.Code)
	}

	rec = doAs(e, token, http.MethodPost, "/events", `{"name":"Party","description":"Cake","location":"Home","date":"2026-03-14","time":"18:30"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doAs(e, token, http.MethodGet, "/events", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Saturday 14 March 2026") {
		t.Fatalf("list: unexpected %d %s", rec.Code, rec.Body.String())
	}
	if rec := doAs(e, token, http.MethodGet, "/account/me", ""); !strings.Contains(rec.Body.String(), `"greeting":"Jo"`) {
		t.Fatalf("me: unexpected %s", rec.Body.String())
	}

	rec = doAs(e, token, http.MethodPost, "/events", `{"name":"Party"}`)
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(errorOf(t, rec), "location is required") {
		t.Fatalf("incomplete event: unexpected %d %s", rec.Code, rec.Body.String())
	}

	if rec := doAs(e, token, http.MethodPost, "/account/logout", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}
	if rec := doAs(e, token, http.MethodGet, "/events", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestRouter_ValidationAndShop(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, http.MethodPost, "/account/signup", `{"name":"Jo","email":"not-an-email","password":"Abcdef1!"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/shop/toys", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown category: expected 422, got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/validation/password", `{"password":"abcABC12!"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Very Strong") {
		t.Fatalf("password: unexpected %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_MetricsUseInjectedRegistry(t *testing.T) {
	e := newTestRouter(t)
	do(e, http.MethodGet, "/health", "")

	rec := do(e, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "planner_http_requests_total") {
		t.Fatalf("expected request counter in %s", rec.Body.String())
	}
}
