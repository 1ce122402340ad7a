package main

import (
	"context"
	"database/sql"
	"errors"
	"fromtodk/internal/adapters/repositories"
	"fromtodk/internal/api"
	"fromtodk/internal/app"
	"fromtodk/internal/config"
	"fromtodk/internal/platform/db"
	"fromtodk/internal/platform/obs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Wikidata, optional Postgres gazetteer) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lookup, err := app.NewDistanceService(cfg, logger)
	if err != nil {
		return err
	}

	deps := api.Deps{Lookup: lookup, Log: logger}

	// The address gazetteer is optional; without a database /address is not served.
	if cfg.DatabaseURL != "" {
		var conn *sql.DB
		conn, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		deps.Addresses = repositories.NewPostgresAddressRepository(conn)
	}

	// Timeouts leave room for a lookup that retries every upstream request.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("strategy", cfg.Strategy),
			zap.Bool("gazetteer", deps.Addresses != nil),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
