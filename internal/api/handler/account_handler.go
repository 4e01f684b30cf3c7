package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/favourami/eventplanner/internal/api/metrics"
	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/ports"
)

// TokenIssuer mints the bearer token returned by a successful login.
type TokenIssuer interface {
	Issue(uid string) (token string, expiresAt time.Time, err error)
}

type AccountHandler struct {
	accounts ports.AccountService
	tokens   TokenIssuer
}

func NewAccountHandler(accounts ports.AccountService, tokens TokenIssuer) *AccountHandler {
	return &AccountHandler{accounts: accounts, tokens: tokens}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpResponse struct {
	UID string `json:"uid"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User     *domain.SessionUser `json:"user"`
	Greeting string              `json:"greeting"`

	// Token is set on login only; send it as "Authorization: Bearer <token>".
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// SignUp creates an account and its profile. The client then logs in.
//
// @Summary      Create an account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Name, email and password"
// @Success      201   {object}  signUpResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /account/signup [post]
func (h *AccountHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	uid, err := h.accounts.SignUp(c.Request().Context(), ports.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.AuthAttemptsTotal.WithLabelValues("signup", attemptResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, signUpResponse{UID: uid})
}

// Login signs in, makes the profile the session user and returns the bearer
// token the signed-in routes require.
//
// @Summary      Log in
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /account/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("login", attemptResult(err)).Inc()
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		User:      user,
		Greeting:  user.FirstName(),
		Token:     token,
		ExpiresAt: &exp,
	})
}

// Logout clears the session. The route is guarded, so only the holder of
// the session token can sign the user out.
//
// @Summary      Log out
// @Tags         account
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /account/logout [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	h.accounts.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Me returns the session user and the dashboard greeting. A client without
// the session token, or a signed-out session, gets a null user greeted as
// "Guest".
//
// @Summary      Current session
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Router       /account/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	u, _ := ctxUser(c)
	return c.JSON(http.StatusOK, sessionResponse{User: u, Greeting: u.FirstName()})
}

func attemptResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrAuth):
		return "auth"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
