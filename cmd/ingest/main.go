// Command ingest is the Sleeper league ingestion CLI.
//
// Usage:
//
//	sleeper-ingest migrate
//	sleeper-ingest sync league --league 1253516124402757633 --weeks 17
//	sleeper-ingest sync week --league 1253516124402757633 --week 9
//	sleeper-ingest sync players
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/sleeper-insights/internal/config"
	"github.com/albapepper/sleeper-insights/internal/db"
	"github.com/albapepper/sleeper-insights/internal/provider/sleeper"
	"github.com/albapepper/sleeper-insights/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "sleeper-ingest",
		Short: "Sleeper league ingestion CLI",
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(syncCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("Schema up to date", "statements", len(db.Schema))
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// sync command
// --------------------------------------------------------------------------

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync data from the Sleeper API",
	}
	cmd.AddCommand(syncLeagueCmd())
	cmd.AddCommand(syncWeekCmd())
	cmd.AddCommand(syncPlayersCmd())
	return cmd
}

func syncLeagueCmd() *cobra.Command {
	var (
		leagueID string
		weeks    int
	)
	cmd := &cobra.Command{
		Use:   "league",
		Short: "Sync league, users, rosters and every week's matchups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *sleeper.Client) error {
				id, err := resolveLeague(leagueID, cfg)
				if err != nil {
					return err
				}
				if weeks <= 0 {
					weeks = cfg.SeasonWeeks
				}
				start := time.Now()
				result := seed.SeedLeague(ctx, pool, client, id, weeks, logger)
				logger.Info("League sync finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				announce(ctx, pool, id, nil, result)
				return reportErrors(result)
			})
		},
	}
	cmd.Flags().StringVar(&leagueID, "league", "", "Sleeper league id (default SLEEPER_LEAGUE_ID)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Weeks to sync (default SEASON_WEEKS)")
	return cmd
}

func syncWeekCmd() *cobra.Command {
	var (
		leagueID string
		week     int
	)
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Sync rosters and one week of matchups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *sleeper.Client) error {
				id, err := resolveLeague(leagueID, cfg)
				if err != nil {
					return err
				}
				start := time.Now()
				result := seed.SeedWeek(ctx, pool, client, id, week, logger)
				logger.Info("Week sync finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				var weeks []int
				if week > 0 {
					weeks = []int{week}
				}
				announce(ctx, pool, id, weeks, result)
				return reportErrors(result)
			})
		},
	}
	cmd.Flags().StringVar(&leagueID, "league", "", "Sleeper league id (default SLEEPER_LEAGUE_ID)")
	cmd.Flags().IntVar(&week, "week", 0, "Week to sync (default: current NFL week)")
	return cmd
}

func syncPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "Sync the NFL player directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *sleeper.Client) error {
				start := time.Now()
				result := seed.SeedPlayers(ctx, pool, client, logger)
				logger.Info("Player sync finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				return reportErrors(result)
			})
		},
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func runSync(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool, client *sleeper.Client) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	client := sleeper.NewClient(cfg.SleeperBaseURL, cfg.SleeperRequestsPerMinute, logger)
	return fn(ctx, cfg, pool, client)
}

func resolveLeague(flag string, cfg *config.Config) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if cfg.SleeperLeagueID != "" {
		return cfg.SleeperLeagueID, nil
	}
	return "", fmt.Errorf("--league or SLEEPER_LEAGUE_ID is required")
}

// announce tells running API servers that the league has new matchup rows.
func announce(ctx context.Context, pool *db.Pool, leagueID string, weeks []int, result seed.SeedResult) {
	if result.MatchupsUpserted == 0 {
		return
	}
	event := seed.SyncEvent{LeagueID: leagueID, Weeks: weeks, Matchups: result.MatchupsUpserted}
	if err := seed.NotifySynced(ctx, pool, event); err != nil {
		logger.Warn("Failed to announce sync", "error", err)
	}
}

func reportErrors(result seed.SeedResult) error {
	for _, e := range result.Errors {
		logger.Error("sync error", "error", e)
	}
	if !result.OK() {
		return fmt.Errorf("%d errors during sync", len(result.Errors))
	}
	return nil
}
