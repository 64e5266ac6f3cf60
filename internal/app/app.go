// Package app wires configuration, logging, the database and the HTTP server
// into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tasktrackr/tasktrackr/db"
	"github.com/tasktrackr/tasktrackr/internal/config"
	"github.com/tasktrackr/tasktrackr/internal/logger"
	"github.com/tasktrackr/tasktrackr/internal/router"
)

// Run serves the API until SIGINT or SIGTERM, then shuts the server down
// within the configured timeout.
func Run(base zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	log, err := logger.ForEnv(base, cfg.Env, cfg.Debug)
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.Env).
		Bool("debug", cfg.Debug).
		Msg("read env")

	if cfg.Env != config.EnvLocal && !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.Open(cfg.Database, log, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := db.MigrateDatabase(database); err != nil {
		return err
	}
	log.Info().Msg("migrated database")

	engine, err := router.NewRouter(cfg, log, database)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("host", cfg.HTTP.Host).
			Str("port", cfg.HTTP.Port).
			Msg("setting up http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	log.Info().Msg("shut down http server")
	return nil
}
