// Package main is the entry point for the Tanach API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joodsetexten/tanach-api/internal/api"
	"github.com/joodsetexten/tanach-api/internal/calendar"
	"github.com/joodsetexten/tanach-api/internal/config"
	"github.com/joodsetexten/tanach-api/internal/logger"
	"github.com/joodsetexten/tanach-api/internal/reference"
	"github.com/joodsetexten/tanach-api/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting tanach API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("location", cfg.LocationName),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	// Open the text corpus and bring the schema up to date
	s, err := store.Open(store.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if _, err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}

	// Calendar engine for the configured observer location
	engine, err := calendar.NewHebcalEngine(calendar.Location{
		Name:        cfg.LocationName,
		CountryCode: cfg.LocationCC,
		Latitude:    cfg.LocationLat,
		Longitude:   cfg.LocationLng,
		TimeZone:    cfg.LocationTZ,
	}, log)
	if err != nil {
		return fmt.Errorf("build calendar engine: %w", err)
	}

	// Citation resolver, with the local corpus as verse oracle
	resolver := reference.NewResolver(s)

	handlers := api.NewHandlers(s, engine, resolver, log)
	router := api.SetupRoutes(handlers, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	// Serve until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-stop:
		log.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
