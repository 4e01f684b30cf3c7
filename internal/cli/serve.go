package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/favourami/eventplanner/internal/api"
)

const shutdownTimeout = 10 * time.Second

func (r *runner) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the app shell HTTP API",
		Args:  cobra.NoArgs,
		RunE: r.serving(func(cmd *cobra.Command, _ []string, app *App) error {
			ctx := cmd.Context()
			app.StartWorkers(ctx)

			e, detach := api.NewRouter(app.Dependencies())
			defer detach()

			addr := app.Config.Addr()
			if app.Config.Auth.JWTSecret == "" {
				app.Log.Warn().Msg("JWT_SECRET not set: bearer tokens end with this process")
			}
			errCh := make(chan error, 1)
			go func() {
				app.Log.Info().Str("addr", addr).Str("backend", app.Config.Backend).Msg("app shell listening")
				errCh <- e.Start(addr)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			app.Log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		}),
	}
}
