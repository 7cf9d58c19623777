package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"projectz/server/catalog"
	"projectz/server/config"
	"projectz/server/handlers"
	"projectz/server/persistence"
	"projectz/server/services"
)

func main() {
	cfg, err := config.Load()
	logger := config.NewLogger(cfg.LogLevel, os.Stdout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	items, err := catalog.LoadOrDefault(cfg.ItemCatalog)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ItemCatalog).Msg("failed to load item catalog")
	}

	// Initialize database
	var db persistence.Storage
	if cfg.DBType == "postgres" {
		db, err = persistence.NewPostgresStore(cfg.DatabaseURL, logger)
		logger.Info().Msg("using PostgreSQL persistence")
	} else {
		db, err = persistence.NewJSONStore(cfg.DBFile)
		logger.Info().Str("file", cfg.DBFile).Msg("using JSON persistence")
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize persistence")
	}
	defer db.Close()

	m, _, err := services.LoadOrGenerate(db, services.WorldOptions{
		Name:    cfg.WorldName,
		Seed:    cfg.WorldSeed,
		Width:   cfg.WorldWidth,
		Height:  cfg.WorldHeight,
		Catalog: items,
		Params:  cfg.Generation,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare world")
	}

	// Initialize services
	worldService := services.NewWorldService(m, db, logger)
	playerService := services.NewPlayerService(worldService, db, items, logger)
	clientManager := handlers.NewClientManager()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(worldService, playerService, clientManager, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// websocket handlers are hijacked, Shutdown does not wait for them
		if err := clientManager.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return worldService.Save()
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
