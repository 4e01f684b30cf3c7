package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/api/middleware"
	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/session"
	"github.com/favourami/eventplanner/internal/infrastructure/db/memory"
)

type liveFixture struct {
	srv     *httptest.Server
	token   string
	docs    *memory.DocumentStore
	session *session.Cache
	events  *stubEventService
}

func newLiveFixture(t *testing.T) *liveFixture {
	t.Helper()
	f := &liveFixture{
		docs:    memory.NewDocumentStore(),
		session: session.NewCache(memory.NewKeyValueStore(), session.DefaultKey, zerolog.Nop()),
		events:  &stubEventService{},
	}
	f.session.SetUser(context.Background(), domain.SessionUser{ID: "uid_1", DisplayName: "Jo Doe"})

	tokens := testTokens(t)
	token, _, err := tokens.Issue("uid_1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	f.token = token

	h := NewLiveHandler(f.docs, f.session, f.events, zerolog.Nop())
	e := echo.New()
	guard := middleware.RequireSession(f.session, tokens)
	e.GET("/live/events", h.Events, guard)
	e.GET("/live/events/:id/guests", h.Guests, guard)
	f.srv = httptest.NewServer(e)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *liveFixture) dial(t *testing.T, path string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + path
	header := http.Header{}
	header.Set(echo.HeaderAuthorization, "Bearer "+f.token)
	return websocket.DefaultDialer.Dial(url, header)
}

type liveFrame[T any] struct {
	Type  string `json:"type"`
	Items []T    `json:"items"`
	Error string `json:"error"`
}

func readFrame[T any](t *testing.T, ws *websocket.Conn) liveFrame[T] {
	t.Helper()
	var msg liveFrame[T]
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := ws.ReadJSON(&msg); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLiveHandler_EventsStreamsSnapshots(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()

	ws, _, err := f.dial(t, "/live/events")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	first := readFrame[eventResponse](t, ws)
	if first.Type != "snapshot" || len(first.Items) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", first)
	}

	party := time.Date(2026, time.March, 14, 18, 30, 0, 0, time.UTC)
	if _, err := f.docs.Add(ctx, ports.CollectionEvents, ports.Fields{
		"name": "Party", "owner_id": "uid_1", "occurs_at": party,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	// another owner's event changes the collection but not this list
	if _, err := f.docs.Add(ctx, ports.CollectionEvents, ports.Fields{
		"name": "Other", "owner_id": "uid_2", "occurs_at": party,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}

	second := readFrame[eventResponse](t, ws)
	if len(second.Items) != 1 || second.Items[0].Name != "Party" || second.Items[0].Time != "18:30" {
		t.Fatalf("unexpected snapshot: %+v", second)
	}
	third := readFrame[eventResponse](t, ws)
	if len(third.Items) != 1 {
		t.Fatalf("expected the list to stay at one event, got %+v", third)
	}
}

func TestLiveHandler_EventsReleasesOnLogoutAndClose(t *testing.T) {
	f := newLiveFixture(t)

	ws, _, err := f.dial(t, "/live/events")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	readFrame[eventResponse](t, ws)
	if n := f.docs.Subscriptions(); n != 1 {
		t.Fatalf("expected 1 subscription, got %d", n)
	}
	if _, err := f.docs.Add(context.Background(), ports.CollectionEvents, ports.Fields{
		"name": "Party", "owner_id": "uid_1", "occurs_at": time.Now(),
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := readFrame[eventResponse](t, ws); len(got.Items) != 1 {
		t.Fatalf("expected the new event, got %+v", got)
	}

	f.session.ClearUser(context.Background())
	cleared := readFrame[eventResponse](t, ws)
	if cleared.Type != "snapshot" || len(cleared.Items) != 0 {
		t.Fatalf("expected an empty snapshot on logout, got %+v", cleared)
	}
	waitFor(t, "logout to release the subscription", func() bool { return f.docs.Subscriptions() == 0 })

	f.session.SetUser(context.Background(), domain.SessionUser{ID: "uid_1", DisplayName: "Jo Doe"})
	readFrame[eventResponse](t, ws)
	if n := f.docs.Subscriptions(); n != 1 {
		t.Fatalf("expected 1 subscription after login, got %d", n)
	}

	ws.Close()
	waitFor(t, "close to release the subscription", func() bool { return f.docs.Subscriptions() == 0 })
}

func TestLiveHandler_EventsSubscriptionFailure(t *testing.T) {
	f := newLiveFixture(t)

	ws, _, err := f.dial(t, "/live/events")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()
	readFrame[eventResponse](t, ws)

	f.docs.Fail(ports.CollectionEvents, errors.New("permission denied"))

	msg := readFrame[eventResponse](t, ws)
	if msg.Type != "error" || msg.Error != "Live updates stopped. Reopen this screen to retry." {
		t.Fatalf("unexpected frame: %+v", msg)
	}
}

func TestLiveHandler_EventsRequireToken(t *testing.T) {
	f := newLiveFixture(t)

	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/live/events"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected the upgrade to be refused")
	}
	if resp == nil || resp.StatusCode == http.StatusSwitchingProtocols {
		t.Fatalf("expected an HTTP error response, got %+v", resp)
	}
	if n := f.docs.Subscriptions(); n != 0 {
		t.Fatalf("expected no subscription, got %d", n)
	}
}

func TestLiveHandler_GuestsUnknownEventIsHTTPError(t *testing.T) {
	f := newLiveFixture(t)
	f.events.err = domain.ErrNotFound

	_, resp, err := f.dial(t, "/live/events/missing/guests")
	if err == nil {
		t.Fatalf("expected the upgrade to be refused")
	}
	if resp == nil || resp.StatusCode == http.StatusSwitchingProtocols {
		t.Fatalf("expected an HTTP error response, got %+v", resp)
	}
	if n := f.docs.Subscriptions(); n != 0 {
		t.Fatalf("expected no subscription, got %d", n)
	}
}

func TestLiveHandler_GuestsStreamEndsOnLogout(t *testing.T) {
	f := newLiveFixture(t)
	ctx := context.Background()

	ws, _, err := f.dial(t, "/live/events/evt_1/guests")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	if first := readFrame[guestResponse](t, ws); first.Type != "snapshot" || len(first.Items) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", first)
	}

	if _, err := f.docs.Add(ctx, ports.CollectionGuests, ports.Fields{
		"full_name": "Ann", "email": "ann@x.io", "event_id": "evt_1", "owner_id": "uid_1",
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	second := readFrame[guestResponse](t, ws)
	if len(second.Items) != 1 || second.Items[0].FullName != "Ann" {
		t.Fatalf("unexpected snapshot: %+v", second)
	}

	f.session.ClearUser(ctx)
	waitFor(t, "logout to end the stream", func() bool { return f.docs.Subscriptions() == 0 })

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Fatalf("expected the server to close the socket")
	}
}
