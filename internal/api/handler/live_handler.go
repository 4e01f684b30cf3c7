package handler

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/api/metrics"
	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/livelist"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/service"
)

const liveWriteWait = 10 * time.Second

// LiveHandler streams live list snapshots over a websocket. Every message
// carries the whole list; clients replace what they show.
type LiveHandler struct {
	docs     ports.DocumentStore
	session  livelist.SessionSource
	events   ports.EventService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewLiveHandler(docs ports.DocumentStore, session livelist.SessionSource, events ports.EventService, log zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		docs:    docs,
		session: session,
		events:  events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log,
	}
}

type liveMessage struct {
	Type  string `json:"type"`
	Items any    `json:"items,omitempty"`
	Error string `json:"error,omitempty"`
}

// Events handles GET /live/events. The list follows the session: it is
// re-bound on login and emptied of its subscription on logout.
//
// @Summary      Live list of my events
// @Tags         live
// @Security     BearerAuth
// @Success      101
// @Router       /live/events [get]
func (h *LiveHandler) Events(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil // the upgrader already replied
	}
	conn := newLiveConn(ws, ports.CollectionEvents, h.log)
	defer conn.close()
	ctx, cancel := conn.watch(c.Request().Context())
	defer cancel()

	b := service.NewEventListBinder(h.docs,
		func(items []ports.EventView) { conn.snapshot(ctx, cancel, toEventResponses(items)) },
		func(err error) { conn.fail(ctx, cancel, err) },
		h.log)
	return b.FollowSession(ctx, h.session)
}

// Guests handles GET /live/events/:id/guests. The event is checked before
// the upgrade so a missing or foreign event is an ordinary HTTP error. The
// stream ends when the session user changes.
//
// @Summary      Live guest list of an event
// @Tags         live
// @Security     BearerAuth
// @Param        id   path  string  true  "Event id"
// @Success      101
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /live/events/{id}/guests [get]
func (h *LiveHandler) Guests(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	eventID := c.Param("id")
	if _, err := h.events.Get(c.Request().Context(), eventID); err != nil {
		return err
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil
	}
	conn := newLiveConn(ws, ports.CollectionGuests, h.log)
	defer conn.close()
	ctx, cancel := conn.watch(c.Request().Context())
	defer cancel()

	unsubscribe := h.session.Subscribe(func(u *domain.SessionUser) {
		if u == nil || u.ID != user.ID {
			cancel()
		}
	})
	defer unsubscribe()

	b := service.NewGuestListBinder(h.docs, user.ID,
		func(items []domain.Guest) { conn.snapshot(ctx, cancel, toGuestResponses(items)) },
		func(err error) { conn.fail(ctx, cancel, err) },
		h.log)
	if err := b.Activate(ctx, eventID); err != nil {
		conn.fail(ctx, cancel, err)
		return nil
	}
	defer b.Deactivate()

	<-ctx.Done()
	return nil
}

// liveConn serializes writes to one websocket.
type liveConn struct {
	ws         *websocket.Conn
	collection string
	log        zerolog.Logger

	mu sync.Mutex
}

func newLiveConn(ws *websocket.Conn, collection string, log zerolog.Logger) *liveConn {
	metrics.LiveSubscriptions.WithLabelValues(collection).Inc()
	return &liveConn{ws: ws, collection: collection, log: log.With().Str("collection", collection).Logger()}
}

// watch returns a context that ends when the peer goes away. Hijacked
// connections do not cancel the request context, so a reader does it.
func (l *liveConn) watch(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		defer cancel()
		for {
			if _, _, err := l.ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return ctx, cancel
}

func (l *liveConn) snapshot(ctx context.Context, cancel context.CancelFunc, items any) {
	metrics.LiveSnapshotsTotal.WithLabelValues(l.collection).Inc()
	l.write(ctx, cancel, liveMessage{Type: "snapshot", Items: items})
}

func (l *liveConn) fail(ctx context.Context, cancel context.CancelFunc, err error) {
	metrics.LiveErrorsTotal.WithLabelValues(l.collection).Inc()
	l.log.Warn().Err(err).Msg("live list failed")
	l.write(ctx, cancel, liveMessage{Type: "error", Error: service.Notice(err)})
}

func (l *liveConn) write(ctx context.Context, cancel context.CancelFunc, msg liveMessage) {
	if ctx.Err() != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.ws.SetWriteDeadline(time.Now().Add(liveWriteWait))
	if err := l.ws.WriteJSON(msg); err != nil {
		l.log.Debug().Err(err).Msg("live write failed")
		cancel()
	}
}

func (l *liveConn) close() {
	metrics.LiveSubscriptions.WithLabelValues(l.collection).Dec()
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = l.ws.Close()
}

