// Command api is the Sleeper Insights API server.
//
// Usage:
//
//	sleeper-api
//	API_PORT=8080 sleeper-api

// @title Sleeper Insights API
// @version 1.0.0
// @description Fantasy football league analytics over Sleeper data: all-play standings, luck index, scoring consistency and bootstrap season projections.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Sleeper Insights
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/sleeper-insights/internal/api"
	"github.com/albapepper/sleeper-insights/internal/api/handler"
	"github.com/albapepper/sleeper-insights/internal/cache"
	"github.com/albapepper/sleeper-insights/internal/config"
	"github.com/albapepper/sleeper-insights/internal/db"
	"github.com/albapepper/sleeper-insights/internal/listener"
	"github.com/albapepper/sleeper-insights/internal/maintenance"
	"github.com/albapepper/sleeper-insights/internal/provider/sleeper"
	"github.com/albapepper/sleeper-insights/internal/report"
	"github.com/albapepper/sleeper-insights/internal/seed"
	"github.com/albapepper/sleeper-insights/internal/store"

	_ "github.com/albapepper/sleeper-insights/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	client := sleeper.NewClient(cfg.SleeperBaseURL, cfg.SleeperRequestsPerMinute, logger)

	// Start maintenance tickers (current-week sync, player directory)
	var leagues []string
	if cfg.SleeperLeagueID != "" {
		leagues = append(leagues, cfg.SleeperLeagueID)
	}
	mcfg := maintenance.DefaultConfig()
	mcfg.SyncInterval = cfg.SyncInterval
	go maintenance.Start(ctx, maintenance.Deps{
		DB:      pool,
		Client:  client,
		Cache:   appCache,
		Leagues: leagues,
	}, mcfg, logger)

	// Purge cached reports when another process syncs a league
	go listener.Start(ctx, cfg.DatabaseURL, appCache, logger)

	// Create router
	router := api.NewRouter(handler.Deps{
		DB:      pool,
		Sources: func(leagueID string) report.Source { return store.New(pool, leagueID) },
		Cache:   appCache,
		Options: report.Options{
			Simulations:      cfg.SimulationCount,
			Workers:          cfg.SimulationWorkers,
			Seed:             cfg.RandomSeed,
			RegularSeasonEnd: cfg.RegularSeasonEndWeek,
		},
		CurrentWeek: handler.CachedWeek(func(ctx context.Context) (int, error) {
			return seed.CurrentWeek(ctx, client)
		}, 10*time.Minute),
		Logger: logger,
	}, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Sleeper Insights API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
