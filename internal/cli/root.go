// Package cli is the planner command tree. Every command opens the same
// wired core (configuration, logger, backends, hydrated session cache and
// services) through a Builder.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/favourami/eventplanner/internal/core/domain"
	"github.com/favourami/eventplanner/internal/core/service"
	"github.com/favourami/eventplanner/internal/infrastructure/config"
	"github.com/favourami/eventplanner/pkg/logger"
)

// Builder opens the wired core for one command run.
type Builder func(ctx context.Context) (*App, error)

// DefaultBuilder reads the environment and connects the configured backends.
func DefaultBuilder(ctx context.Context) (*App, error) {
	cfg, err := config.LoadWith(ctx, envconfig.OsLookuper())
	if err != nil {
		return nil, err
	}
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
		Output: os.Stderr,
	})
	return Build(ctx, cfg, log)
}

// Execute runs the command tree until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand(DefaultBuilder).ExecuteContext(ctx)
}

type runner struct {
	build   Builder
	jsonOut bool
}

// NewRootCommand assembles the command tree over build.
func NewRootCommand(build Builder) *cobra.Command {
	r := &runner{build: build}
	root := &cobra.Command{
		Use:   "planner",
		Short: "Plan events, manage guests and send invitations",
		Long: `planner drives the event planner core from a terminal.

The session is kept in the key-value store, so a login survives between
commands when the mongo backend is configured (STORAGE_BACKEND=mongo).

Examples:
  planner signup --name "Jo Doe" --email jo@example.com
  planner login --email jo@example.com
  planner events list
  planner events watch
  planner guests add <event-id> --name "Ann Lee" --email ann@example.com
  planner serve`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&r.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(
		r.serveCmd(),
		r.signupCmd(),
		r.loginCmd(),
		r.logoutCmd(),
		r.whoamiCmd(),
		r.eventsCmd(),
		r.guestsCmd(),
		r.passwordStrengthCmd(),
	)
	return root
}

// with opens the core around fn and closes it on every exit path.
func (r *runner) with(fn func(cmd *cobra.Command, args []string, app *App) error) func(*cobra.Command, []string) error {
	return r.open(fn, false)
}

// serving is with for long-running commands: the session is restored in the
// background so startup does not wait on the key-value store.
func (r *runner) serving(fn func(cmd *cobra.Command, args []string, app *App) error) func(*cobra.Command, []string) error {
	return r.open(fn, true)
}

func (r *runner) open(fn func(cmd *cobra.Command, args []string, app *App) error, background bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := r.build(ctx)
		if err != nil {
			return err
		}
		defer app.Close(context.WithoutCancel(ctx))
		if background {
			app.HydrateInBackground(ctx)
		} else {
			app.Hydrate(ctx)
		}

		if err := fn(cmd, args, app); err != nil {
			app.Log.Debug().Err(err).Str("command", cmd.CommandPath()).Msg("command failed")
			if userFacing(err) {
				return noticeError{err: err}
			}
			return err
		}
		return nil
	}
}

// noticeError prints as the user-facing notice and keeps the cause for
// errors.Is.
type noticeError struct {
	err error
}

func (e noticeError) Error() string { return service.Notice(e.err) }
func (e noticeError) Unwrap() error { return e.err }

// userFacing reports whether err belongs to the domain taxonomy and so has a
// notice worth printing instead of the raw cause.
func userFacing(err error) bool {
	for _, target := range []error{
		domain.ErrValidation, domain.ErrAuth, domain.ErrNoSession, domain.ErrForbidden,
		domain.ErrNotFound, domain.ErrWrite, domain.ErrSubscription,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
