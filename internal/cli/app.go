package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/favourami/eventplanner/internal/api"
	"github.com/favourami/eventplanner/internal/api/middleware"
	"github.com/favourami/eventplanner/internal/core/ports"
	"github.com/favourami/eventplanner/internal/core/service"
	"github.com/favourami/eventplanner/internal/core/session"
	"github.com/favourami/eventplanner/internal/core/validation"
	"github.com/favourami/eventplanner/internal/infrastructure/config"
	"github.com/favourami/eventplanner/internal/infrastructure/content"
	"github.com/favourami/eventplanner/internal/infrastructure/db/memory"
	mongodb "github.com/favourami/eventplanner/internal/infrastructure/db/mongo"
	redisdb "github.com/favourami/eventplanner/internal/infrastructure/db/redis"
	"github.com/favourami/eventplanner/internal/infrastructure/http/handlers"
	"github.com/favourami/eventplanner/internal/infrastructure/queue"
)

// App is the wired core shared by every command.
type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	Session *session.Cache
	Docs    ports.DocumentStore
	Forms   *validation.Forms

	Accounts    ports.AccountService
	Events      ports.EventService
	Guests      ports.GuestService
	Invitations ports.InvitationService
	Shop        ports.ShopService

	Dispatcher *queue.Dispatcher
	Checks     []handlers.Check
	Tokens     *middleware.Tokens

	stopWorkers context.CancelFunc
	hydrating   chan struct{}
	closers     []func(context.Context) error
}

// Build connects the configured backends and wires the services on top. The
// session cache starts signed out; restoring it is up to the caller, see
// Hydrate and HydrateInBackground.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	var (
		kv       ports.KeyValueStore
		identity ports.IdentityProvider
		cache    ports.ContentCache
	)
	switch cfg.Backend {
	case config.BackendMemory:
		app.Docs = memory.NewDocumentStore()
		kv = memory.NewKeyValueStore()
		identity = memory.NewIdentityProvider()
		log.Warn().Msg("in-memory backend: nothing outlives this process")

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client.Disconnect)

		docs := mongodb.NewDocumentStore(db, log)
		idp := mongodb.NewIdentityProvider(db)
		if err := mongodb.EnsureIndexes(ctx, docs, idp); err != nil {
			app.Close(ctx)
			return nil, err
		}
		app.Docs, identity = docs, idp

		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			app.Close(ctx)
			return nil, err
		}
		app.closers = append(app.closers, func(context.Context) error { return rdb.Close() })
		kv = redisdb.NewKeyValueStore(rdb)
		cache = redisdb.NewContentCache(rdb, cfg.Shop.CacheTTL)
		app.Checks = []handlers.Check{handlers.MongoCheck(db), handlers.RedisCheck(rdb)}

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	tokens, err := middleware.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}
	app.Tokens = tokens

	app.wire(kv, identity, cache)
	return app, nil
}

// Hydrate restores the persisted session before returning. One-shot
// commands act on the restored user straight away.
func (a *App) Hydrate(ctx context.Context) {
	a.Session.Hydrate(ctx)
}

// HydrateInBackground starts restoring the persisted session and returns at
// once. Live lists following the session pick the user up when it lands.
func (a *App) HydrateInBackground(ctx context.Context) {
	done := make(chan struct{})
	a.hydrating = done
	go func() {
		defer close(done)
		a.Session.Hydrate(ctx)
	}()
}

func (a *App) wire(kv ports.KeyValueStore, identity ports.IdentityProvider, cache ports.ContentCache) {
	cfg, log := a.Config, a.Log

	a.Session = session.NewCache(kv, cfg.Session.Key, log)
	a.Forms = validation.NewForms()
	a.Dispatcher = queue.NewDispatcher(cfg.InvitationWorkers, queue.NewLogSender(log), log)

	a.Accounts = service.NewAccountService(identity, a.Docs, a.Session, a.Forms, log)
	a.Events = service.NewEventService(a.Docs, a.Session, a.Forms, log)
	a.Guests = service.NewGuestService(a.Docs, a.Session, a.Forms, log)
	a.Invitations = service.NewInvitationService(a.Docs, a.Session, a.Dispatcher, log)

	providers := []ports.ContentProvider{
		content.NewBooks(content.Config{BaseURL: cfg.Shop.BooksURL, APIKey: cfg.Shop.BooksKey}),
		content.NewGames(content.Config{BaseURL: cfg.Shop.GamesURL, APIKey: cfg.Shop.GamesKey}),
		content.NewMovies(content.Config{BaseURL: cfg.Shop.MoviesURL, APIKey: cfg.Shop.MoviesKey}),
	}
	a.Shop = service.NewShopService(providers, cache, log)
}

// StartWorkers runs the invitation dispatcher until Close.
func (a *App) StartWorkers(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.stopWorkers = cancel
	a.Dispatcher.Start(ctx)
}

// Dependencies returns the app shell wiring.
func (a *App) Dependencies() api.Dependencies {
	return api.Dependencies{
		Session:     a.Session,
		Docs:        a.Docs,
		Forms:       a.Forms,
		Accounts:    a.Accounts,
		Events:      a.Events,
		Guests:      a.Guests,
		Invitations: a.Invitations,
		Shop:        a.Shop,
		Checks:      a.Checks,
		Tokens:      a.Tokens,
		Log:         a.Log,
	}
}

// Close stops the workers, retries a pending session removal and releases
// the backends.
func (a *App) Close(ctx context.Context) {
	if a.stopWorkers != nil {
		a.stopWorkers()
		a.Dispatcher.Wait()
		a.stopWorkers = nil
	}
	if a.hydrating != nil {
		<-a.hydrating
		a.hydrating = nil
	}
	if a.Session != nil {
		a.Session.RetryPendingRemoval(ctx)
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.Log.Warn().Err(err).Msg("close backend")
		}
	}
	a.closers = nil
}
