// Package store loads a league's scoring dataset from Postgres through the
// prepared statements registered by internal/db.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/sleeper-insights/internal/analytics"
	"github.com/albapepper/sleeper-insights/internal/db"
)

// Querier is the read side of *pgxpool.Pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads one league. It holds no cached state; every call queries.
type Store struct {
	q        Querier
	leagueID string
}

// New returns a Store bound to leagueID.
func New(q Querier, leagueID string) *Store {
	return &Store{q: q, leagueID: leagueID}
}

// LeagueID returns the league the store reads.
func (s *Store) LeagueID() string { return s.leagueID }

// WeeklyScores returns every scored week. Rows arrive ordered by points desc
// then owner id within each week, and that order is preserved.
func (s *Store) WeeklyScores(ctx context.Context) (analytics.WeeklyScores, error) {
	rows, err := s.q.Query(ctx, db.StmtWeeklyScores, s.leagueID)
	if err != nil {
		return nil, fmt.Errorf("query weekly scores: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (weekScore, error) {
		var w weekScore
		err := row.Scan(&w.week, &w.team, &w.points)
		return w, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan weekly scores: %w", err)
	}
	return groupScores(out), nil
}

// PairedMatchups returns every completed head-to-head pairing.
func (s *Store) PairedMatchups(ctx context.Context) ([]analytics.PairedMatchup, error) {
	rows, err := s.q.Query(ctx, db.StmtPairedMatchups, s.leagueID)
	if err != nil {
		return nil, fmt.Errorf("query paired matchups: %w", err)
	}
	pairs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (analytics.PairedMatchup, error) {
		var (
			week       int
			a, b       string
			aPts, bPts float64
		)
		if err := row.Scan(&week, &a, &aPts, &b, &bPts); err != nil {
			return analytics.PairedMatchup{}, err
		}
		return analytics.NewPairedMatchup(week, analytics.TeamID(a), aPts, analytics.TeamID(b), bPts), nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan paired matchups: %w", err)
	}
	return pairs, nil
}

// TeamNames maps owner ids to team names, falling back to display names.
func (s *Store) TeamNames(ctx context.Context) (map[analytics.TeamID]string, error) {
	rows, err := s.q.Query(ctx, db.StmtTeamNames, s.leagueID)
	if err != nil {
		return nil, fmt.Errorf("query team names: %w", err)
	}
	defer rows.Close()

	names := make(map[analytics.TeamID]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan team names: %w", err)
		}
		names[analytics.TeamID(id)] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team names: %w", err)
	}
	return names, nil
}

// CurrentRecords reconciles completed head-to-head matchups.
func (s *Store) CurrentRecords(ctx context.Context) (analytics.ActualRecords, error) {
	pairs, err := s.PairedMatchups(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Reconcile(pairs), nil
}

// RemainingMatchups returns the stored schedule for weeks [fromWeek, toWeek].
func (s *Store) RemainingMatchups(ctx context.Context, fromWeek, toWeek int) ([]analytics.RemainingMatchup, error) {
	if toWeek < fromWeek {
		return nil, nil
	}
	rows, err := s.q.Query(ctx, db.StmtScheduleRows, s.leagueID, fromWeek, toWeek)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (scheduleRow, error) {
		var r scheduleRow
		err := row.Scan(&r.week, &r.group, &r.team)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan schedule: %w", err)
	}
	return groupSchedule(out), nil
}

// RegularSeasonEnd returns playoff_week_start - 1 for the league, or 0 when
// the league is unknown or has no playoff start configured.
func (s *Store) RegularSeasonEnd(ctx context.Context) (int, error) {
	var (
		name, season string
		playoffStart int
	)
	err := s.q.QueryRow(ctx, db.StmtLeagueSettings, s.leagueID).Scan(&name, &season, &playoffStart)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query league settings: %w", err)
	}
	if playoffStart <= 1 {
		return 0, nil
	}
	return playoffStart - 1, nil
}

// LatestScoredWeek returns the highest week with any points, or 0.
func (s *Store) LatestScoredWeek(ctx context.Context) (int, error) {
	var week int
	if err := s.q.QueryRow(ctx, db.StmtLatestWeek, s.leagueID).Scan(&week); err != nil {
		return 0, fmt.Errorf("query latest week: %w", err)
	}
	return week, nil
}
