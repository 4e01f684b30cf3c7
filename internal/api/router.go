package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/favourami/eventplanner/docs"
	"github.com/favourami/eventplanner/internal/api/handler"
	"github.com/favourami/eventplanner/internal/api/metrics"
	"github.com/favourami/eventplanner/internal/api/middleware"
	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/livelist"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/validation"
	"github.com/favourami/eventplanner/internal/infrastructure/http/handlers"
)

// Dependencies is everything the app shell needs, built once at startup.
type Dependencies struct {
	Session     livelist.SessionSource
	Docs        ports.DocumentStore
	Forms       *validation.Forms
	Accounts    ports.AccountService
	Events      ports.EventService
	Guests      ports.GuestService
	Invitations ports.InvitationService
	Shop        ports.ShopService
	// Checks are the readiness probes; empty with the in-memory backend.
	Checks []handlers.Check
	// Tokens signs the bearer token returned on login and checks it on
	// every signed-in route.
	Tokens *middleware.Tokens
	// Registry receives the HTTP request metrics and serves /metrics.
	// Nil means the default prometheus registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The returned function detaches the session-change observer.
func NewRouter(d Dependencies) (*echo.Echo, func()) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator(d.Forms)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig(d.Registry)))

	detach := d.Session.Subscribe(func(u *domain.SessionUser) {
		if u == nil {
			metrics.SessionChangesTotal.WithLabelValues("logout").Inc()
			return
		}
		metrics.SessionChangesTotal.WithLabelValues("login").Inc()
	})

	// --- Handlers ---
	accountHandler := handler.NewAccountHandler(d.Accounts, d.Tokens)
	eventHandler := handler.NewEventHandler(d.Events, d.Guests)
	invitationHandler := handler.NewInvitationHandler(d.Invitations)
	shopHandler := handler.NewShopHandler(d.Shop)
	liveHandler := handler.NewLiveHandler(d.Docs, d.Session, d.Events, d.Log)

	// --- Health probes and tooling (no session required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.Checks...).Readiness)
	e.GET("/metrics", metricsHandler(d.Registry))
	docs.SwaggerInfo.BasePath = "/"
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireSession := middleware.RequireSession(d.Session, d.Tokens)

	// --- Account ---
	account := e.Group("/account")
	account.POST("/signup", accountHandler.SignUp)
	account.POST("/login", accountHandler.Login)
	account.POST("/logout", accountHandler.Logout, requireSession)
	account.GET("/me", accountHandler.Me, middleware.OptionalSession(d.Session, d.Tokens))

	e.POST("/validation/password", handler.PasswordStrength)
	e.GET("/shop/:category", shopHandler.Browse)

	// --- Signed-in routes ---
	signedIn := e.Group("", requireSession)

	signedIn.GET("/events", eventHandler.List)
	signedIn.POST("/events", eventHandler.Create)
	signedIn.GET("/events/:id", eventHandler.Get)
	signedIn.PUT("/events/:id", eventHandler.Update)
	signedIn.DELETE("/events/:id", eventHandler.Delete)

	signedIn.POST("/events/:id/guests", eventHandler.AddGuest)
	signedIn.PUT("/guests/:id", eventHandler.UpdateGuest)
	signedIn.DELETE("/guests/:id", eventHandler.DeleteGuest)

	signedIn.GET("/events/:id/invitation", invitationHandler.Render)
	signedIn.POST("/events/:id/invitations", invitationHandler.Send)

	signedIn.GET("/live/events", liveHandler.Events)
	signedIn.GET("/live/events/:id/guests", liveHandler.Guests)

	return e, detach
}

func promConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	conf := echoprometheus.MiddlewareConfig{Namespace: "planner", Subsystem: "http"}
	if reg != nil {
		conf.Registerer = reg
	}
	return conf
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
