package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/pricepi/internal/api"
	"github.com/donaldgifford/pricepi/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		Long: "Serves GET /api/v1/search, /healthz and /metrics. Each search is signed\n" +
			"and forwarded to the Pricepi API once, without caching or retries.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			log := a.logger(cmd, cfg)

			shutdownTracing, err := telemetry.SetupTracing(cmd.Context(), cfg.Tracing, Version)
			if err != nil {
				return fmt.Errorf("setting up tracing: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := shutdownTracing(ctx); err != nil {
					log.Warn("flushing spans", "err", err)
				}
			}()

			e := api.NewRouter(a.client(cmd, cfg), log, Version)
			e.Server.ReadTimeout = cfg.Server.ReadTimeout
			e.Server.WriteTimeout = cfg.Server.WriteTimeout

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting server", "addr", cfg.Server.Addr(), "endpoint", cfg.Pricepi.Endpoint)
				if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("starting server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := e.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down server: %w", err)
			}

			log.Info("server stopped")
			return nil
		},
	}
}
