// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema migration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/sleeper-insights/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection. Statements
	// reference tables, so a fresh database must be migrated through
	// Migrate before the pool is opened.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Statement names shared with internal/store.
const (
	StmtHealthCheck    = "health_check"
	StmtLeagueSettings = "league_settings"
	StmtTeamNames      = "team_names"
	StmtWeeklyScores   = "weekly_scores"
	StmtPairedMatchups = "paired_matchups"
	StmtScheduleRows   = "schedule_rows"
	StmtLatestWeek     = "latest_scored_week"
)

// Statements maps prepared statement names to SQL. Scores only count when a
// roster has an owner and points > 0; unplayed weeks are stored as 0.
var Statements = map[string]string{
	StmtHealthCheck: "SELECT 1",

	StmtLeagueSettings: `SELECT name, season, playoff_week_start
		FROM ` + config.LeaguesTable + ` WHERE id = $1`,

	StmtTeamNames: `SELECT user_id, COALESCE(NULLIF(team_name, ''), display_name)
		FROM ` + config.UsersTable + ` WHERE league_id = $1
		ORDER BY user_id`,

	// Each week ordered by points desc then owner id, which fixes the
	// all-play rank tie-break.
	StmtWeeklyScores: `SELECT m.week, r.owner_id, m.points
		FROM ` + config.MatchupsTable + ` m
		JOIN ` + config.RostersTable + ` r ON r.league_id = m.league_id AND r.roster_id = m.roster_id
		WHERE m.league_id = $1 AND m.points > 0 AND r.owner_id IS NOT NULL
		ORDER BY m.week, m.points DESC, r.owner_id`,

	StmtPairedMatchups: `SELECT m1.week, r1.owner_id, m1.points, r2.owner_id, m2.points
		FROM ` + config.MatchupsTable + ` m1
		JOIN ` + config.MatchupsTable + ` m2
			ON m2.league_id = m1.league_id AND m2.week = m1.week
			AND m2.matchup_id = m1.matchup_id AND m2.roster_id > m1.roster_id
		JOIN ` + config.RostersTable + ` r1 ON r1.league_id = m1.league_id AND r1.roster_id = m1.roster_id
		JOIN ` + config.RostersTable + ` r2 ON r2.league_id = m2.league_id AND r2.roster_id = m2.roster_id
		WHERE m1.league_id = $1 AND m1.points > 0 AND m2.points > 0
			AND r1.owner_id IS NOT NULL AND r2.owner_id IS NOT NULL
		ORDER BY m1.week, m1.matchup_id`,

	StmtScheduleRows: `SELECT m.week, m.matchup_id, r.owner_id
		FROM ` + config.MatchupsTable + ` m
		JOIN ` + config.RostersTable + ` r ON r.league_id = m.league_id AND r.roster_id = m.roster_id
		WHERE m.league_id = $1 AND m.week BETWEEN $2 AND $3
			AND m.matchup_id IS NOT NULL AND r.owner_id IS NOT NULL
		ORDER BY m.week, m.matchup_id, r.owner_id`,

	StmtLatestWeek: `SELECT COALESCE(MAX(week), 0)
		FROM ` + config.MatchupsTable + ` WHERE league_id = $1 AND points > 0`,
}

// registerPreparedStatements registers all statements the API and ingestion
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	for name, sql := range Statements {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
