package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/sleeper-insights/internal/config"
)

// Schema holds the DDL applied by Migrate, in order. Every statement is
// idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + config.LeaguesTable + ` (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		season             TEXT NOT NULL,
		status             TEXT,
		total_rosters      INTEGER NOT NULL DEFAULT 0,
		playoff_week_start INTEGER NOT NULL DEFAULT 0,
		raw                JSONB NOT NULL DEFAULT '{}',
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.UsersTable + ` (
		league_id    TEXT NOT NULL REFERENCES ` + config.LeaguesTable + `(id) ON DELETE CASCADE,
		user_id      TEXT NOT NULL,
		display_name TEXT NOT NULL,
		team_name    TEXT,
		raw          JSONB NOT NULL DEFAULT '{}',
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (league_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.RostersTable + ` (
		league_id  TEXT NOT NULL REFERENCES ` + config.LeaguesTable + `(id) ON DELETE CASCADE,
		roster_id  INTEGER NOT NULL,
		owner_id   TEXT,
		players    JSONB NOT NULL DEFAULT '[]',
		wins       INTEGER NOT NULL DEFAULT 0,
		losses     INTEGER NOT NULL DEFAULT 0,
		ties       INTEGER NOT NULL DEFAULT 0,
		points_for DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (league_id, roster_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ` + config.MatchupsTable + ` (
		league_id      TEXT NOT NULL,
		week           INTEGER NOT NULL CHECK (week > 0),
		roster_id      INTEGER NOT NULL,
		matchup_id     INTEGER,
		points         DOUBLE PRECISION NOT NULL DEFAULT 0,
		starters       JSONB NOT NULL DEFAULT '[]',
		players_points JSONB NOT NULL DEFAULT '{}',
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (league_id, week, roster_id),
		FOREIGN KEY (league_id, roster_id) REFERENCES ` + config.RostersTable + `(league_id, roster_id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matchups_group
		ON ` + config.MatchupsTable + ` (league_id, week, matchup_id)`,
	`CREATE TABLE IF NOT EXISTS ` + config.PlayersTable + ` (
		player_id  TEXT PRIMARY KEY,
		full_name  TEXT NOT NULL,
		team       TEXT,
		position   TEXT,
		data       JSONB NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies Schema inside a single transaction on a plain connection,
// so it can run before any prepared statement exists.
func Migrate(ctx context.Context, databaseURL string) error {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, stmt := range Schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return tx.Commit(ctx)
}
