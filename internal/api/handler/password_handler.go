package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/favourami/eventplanner/internal/core/validation"
)

type passwordRequest struct {
	Password string `json:"password"`
}

type passwordResponse struct {
	Strength   string `json:"strength"`
	Level      int    `json:"level"`
	Acceptable bool   `json:"acceptable"`
}

// PasswordStrength handles POST /validation/password. It is evaluated on
// every call with no debouncing, so a form can send each keystroke.
//
// @Summary      Score a candidate password
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        body  body      passwordRequest  true  "Candidate password"
// @Success      200   {object}  passwordResponse
// @Router       /validation/password [post]
func PasswordStrength(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	s := validation.PasswordStrength(req.Password)
	return c.JSON(http.StatusOK, passwordResponse{
		Strength:   s.String(),
		Level:      int(s),
		Acceptable: validation.IsAcceptablePassword(req.Password),
	})
}
