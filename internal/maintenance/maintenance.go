// Package maintenance runs periodic background tasks as Go tickers: the
// current-week score sync and the NFL player directory refresh.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/sleeper-insights/internal/seed"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	SyncInterval    time.Duration // Current-week matchups for every tracked league
	PlayersInterval time.Duration // NFL player directory
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		SyncInterval:    30 * time.Minute,
		PlayersInterval: 24 * time.Hour,
	}
}

// Deps are the collaborators the tasks need.
type Deps struct {
	DB      seed.DB
	Client  seed.Fetcher
	Cache   Purger
	Leagues []string
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, deps Deps, cfg Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Maintenance tickers started",
		"sync", cfg.SyncInterval,
		"players", cfg.PlayersInterval,
		"leagues", len(deps.Leagues))

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Sync: refresh the current week so live scores reach the analytics
	if cfg.SyncInterval > 0 && len(deps.Leagues) > 0 {
		t := time.NewTicker(cfg.SyncInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "sync", func() { syncLeagues(ctx, deps, logger) })
	}

	// Players: the directory changes with signings and releases
	if cfg.PlayersInterval > 0 {
		t := time.NewTicker(cfg.PlayersInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "players", func() { syncPlayers(ctx, deps, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, name string, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// syncLeagues re-seeds the current week of every tracked league and drops
// the league's cached reports once new rows landed.
func syncLeagues(ctx context.Context, deps Deps, logger *slog.Logger) {
	for _, leagueID := range deps.Leagues {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		res := seed.SeedWeek(ctx, deps.DB, deps.Client, leagueID, 0, logger)
		for _, e := range res.Errors {
			logger.Warn("Sync: error", "league_id", leagueID, "error", e)
		}
		if res.MatchupsUpserted > 0 {
			InvalidateLeague(deps.Cache, leagueID, logger)
		}
		logger.Info("Sync: league refreshed",
			"league_id", leagueID,
			"summary", res.Summary(),
			"duration", time.Since(start).Round(time.Millisecond))
	}
}

func syncPlayers(ctx context.Context, deps Deps, logger *slog.Logger) {
	res := seed.SeedPlayers(ctx, deps.DB, deps.Client, logger)
	if !res.OK() {
		logger.Warn("Players: refresh finished with errors", "errors", len(res.Errors))
	}
}
