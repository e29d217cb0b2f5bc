// Command analyze prints league analytics as JSON.
//
// Usage:
//
//	sleeper-analyze standings --league 1253516124402757633
//	sleeper-analyze luck
//	sleeper-analyze consistency
//	sleeper-analyze projections --simulations 20000 --seed 7
//	sleeper-analyze summary
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/sleeper-insights/internal/config"
	"github.com/albapepper/sleeper-insights/internal/db"
	"github.com/albapepper/sleeper-insights/internal/provider/sleeper"
	"github.com/albapepper/sleeper-insights/internal/report"
	"github.com/albapepper/sleeper-insights/internal/seed"
	"github.com/albapepper/sleeper-insights/internal/store"
)

// Logs go to stderr so stdout stays valid JSON.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

var leagueID string

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:           "sleeper-analyze",
		Short:         "Sleeper league analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&leagueID, "league", "", "Sleeper league id (default SLEEPER_LEAGUE_ID)")

	root.AddCommand(reportCmd("standings", "All-play standings", func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Standings(ctx)
	}))
	root.AddCommand(reportCmd("luck", "Luck index", func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Luck(ctx)
	}))
	root.AddCommand(reportCmd("consistency", "Scoring consistency ranking", func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Consistency(ctx)
	}))
	root.AddCommand(reportCmd("summary", "League summary statistics", func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Summary(ctx)
	}))
	root.AddCommand(projectionsCmd())

	if err := root.Execute(); err != nil {
		logger.Error("analyze failed", "error", err)
		os.Exit(1)
	}
}

func reportCmd(name, short string, build func(context.Context, *report.Builder) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(func(ctx context.Context, cfg *config.Config, b *report.Builder) (any, error) {
				return build(ctx, b)
			})
		},
	}
}

func projectionsCmd() *cobra.Command {
	var (
		params   report.ProjectionParams
		seedFlag int64
	)
	cmd := &cobra.Command{
		Use:   "projections",
		Short: "Simulate the remaining regular season",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				params.Seed = &seedFlag
			}
			return runReport(func(ctx context.Context, cfg *config.Config, b *report.Builder) (any, error) {
				if params.FromWeek == 0 {
					client := sleeper.NewClient(cfg.SleeperBaseURL, cfg.SleeperRequestsPerMinute, logger)
					week, err := seed.CurrentWeek(ctx, client)
					if err != nil {
						logger.Warn("current week lookup failed, using last scored week", "error", err)
					} else {
						params.FromWeek = week
					}
				}
				return b.Projections(ctx, params)
			})
		},
	}
	cmd.Flags().IntVar(&params.FromWeek, "from-week", 0, "First week to simulate (default: current NFL week)")
	cmd.Flags().IntVar(&params.ToWeek, "to-week", 0, "Last week to simulate (default: regular-season end)")
	cmd.Flags().IntVar(&params.Simulations, "simulations", 0, "Draws per matchup (default SIMULATION_COUNT)")
	cmd.Flags().Int64Var(&seedFlag, "seed", 0, "Random seed (default RANDOM_SEED, else clock)")
	cmd.Flags().IntVar(&params.Workers, "workers", 0, "Matchups simulated in parallel (default SIMULATION_WORKERS)")
	cmd.Flags().BoolVar(&params.SkipInsufficient, "skip-insufficient", false, "Skip matchups involving teams with no history")
	return cmd
}

func runReport(fn func(ctx context.Context, cfg *config.Config, b *report.Builder) (any, error)) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	id := leagueID
	if id == "" {
		id = cfg.SleeperLeagueID
	}
	if id == "" {
		return fmt.Errorf("--league or SLEEPER_LEAGUE_ID is required")
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	b := report.NewBuilder(id, store.New(pool, id), report.Options{
		Simulations:      cfg.SimulationCount,
		Workers:          cfg.SimulationWorkers,
		Seed:             cfg.RandomSeed,
		RegularSeasonEnd: cfg.RegularSeasonEndWeek,
	})
	v, err := fn(ctx, cfg, b)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
