package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/favourami/eventplanner/internal/core/ports"
)

// EventHandler serves the signed-in user's events and their guests.
type EventHandler struct {
	events ports.EventService
	guests ports.GuestService
}

func NewEventHandler(events ports.EventService, guests ports.GuestService) *EventHandler {
	return &EventHandler{events: events, guests: guests}
}

// List handles GET /events.
//
// @Summary      List my events
// @Tags         events
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   eventResponse
// @Failure      401  {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	views, err := h.events.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(views))
}

// Create handles POST /events.
//
// @Summary      Create an event
// @Tags         events
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      eventRequest  true  "Event form"
// @Success      201   {object}  createdResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}
	id, err := h.events.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Get handles GET /events/:id: the event, then its guests.
//
// @Summary      Event detail
// @Tags         events
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  eventDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	detail, err := h.events.Detail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventDetailResponse{
		Event:  toEventResponse(detail.Event),
		Guests: toGuestResponses(detail.Guests),
	})
}

// Update handles PUT /events/:id.
//
// @Summary      Edit an event
// @Tags         events
// @Security     BearerAuth
// @Accept       json
// @Param        id    path  string        true  "Event id"
// @Param        body  body  eventRequest  true  "Event form"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}
	if err := h.events.Update(c.Request().Context(), c.Param("id"), in); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /events/:id. Guests of the event are kept.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.events.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddGuest handles POST /events/:id/guests.
//
// @Summary      Add a guest
// @Tags         guests
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Event id"
// @Param        body  body      guestRequest  true  "Guest form"
// @Success      201   {object}  createdResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /events/{id}/guests [post]
func (h *EventHandler) AddGuest(c echo.Context) error {
	var req guestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	id, err := h.guests.Add(c.Request().Context(), c.Param("id"), ports.GuestInput{FullName: req.FullName, Email: req.Email})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// UpdateGuest handles PUT /guests/:id.
//
// @Summary      Edit a guest
// @Tags         guests
// @Security     BearerAuth
// @Accept       json
// @Param        id    path  string        true  "Guest id"
// @Param        body  body  guestRequest  true  "Guest form"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /guests/{id} [put]
func (h *EventHandler) UpdateGuest(c echo.Context) error {
	var req guestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.guests.Update(c.Request().Context(), c.Param("id"), ports.GuestInput{FullName: req.FullName, Email: req.Email}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteGuest handles DELETE /guests/:id.
//
// @Summary      Remove a guest
// @Tags         guests
// @Security     BearerAuth
// @Param        id  path  string  true  "Guest id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /guests/{id} [delete]
func (h *EventHandler) DeleteGuest(c echo.Context) error {
	if err := h.guests.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
