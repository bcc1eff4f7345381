package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/batpass-go/internal/config"
	"github.com/vaultpass/batpass-go/internal/generator"
	"github.com/vaultpass/batpass-go/internal/handler"
	"github.com/vaultpass/batpass-go/internal/repository"
	"github.com/vaultpass/batpass-go/internal/service"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			slog.SetDefault(cfg.NewLogger())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default PORT)")
	return cmd
}

// newApp wires the HTTP handler. Stats routes and event recording need the
// database; generation does not. cleanup releases the database, if any.
func newApp(ctx context.Context, cfg config.Config) (http.Handler, func(), error) {
	routes := handler.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}
	cleanup := func() {}

	var recorder service.EventRecorder
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	db, err := repository.NewDB(pingCtx, cfg.DatabaseDSN)
	cancel()
	if err != nil {
		slog.Warn("database unavailable, stats routes disabled", "error", err)
	} else {
		if err := repository.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		cleanup = func() { db.Close() }
		events := repository.NewEventRepository(db)
		recorder = events
		routes.Stats = handler.NewStatsHandler(service.NewStatsService(events))
	}

	routes.Generator = handler.NewGeneratorHandler(service.NewGeneratorService(generator.New(nil), recorder))
	return handler.NewRouter(ctx, routes), cleanup, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	h, cleanup, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		return err
	}

	slog.Info("server stopped")
	return nil
}
