package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/favourami/eventplanner/internal/core/ports"
)

type InvitationHandler struct {
	invitations ports.InvitationService
}

func NewInvitationHandler(invitations ports.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

type invitationResponse struct {
	Greeting    string `json:"greeting"`
	Headline    string `json:"headline"`
	EventName   string `json:"event_name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

// Render handles GET /events/:id/invitation.
//
// @Summary      Render the invitation card
// @Tags         invitations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  invitationResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id}/invitation [get]
func (h *InvitationHandler) Render(c echo.Context) error {
	v, err := h.invitations.Render(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invitationResponse{
		Greeting:    v.Greeting,
		Headline:    v.Headline,
		EventName:   v.EventName,
		Description: v.Description,
		Date:        v.Date,
		Time:        v.Time,
		Location:    v.Location,
	})
}

// Send handles POST /events/:id/invitations. One invitation per guest is
// queued and delivered in the background.
//
// @Summary      Send invitations to every guest
// @Tags         invitations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      202  {object}  acceptedResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id}/invitations [post]
func (h *InvitationHandler) Send(c echo.Context) error {
	n, err := h.invitations.SendAll(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "invitations queued", Count: n})
}
