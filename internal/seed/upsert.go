package seed

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/albapepper/sleeper-insights/internal/config"
	"github.com/albapepper/sleeper-insights/internal/provider"
)

// DB is the subset of *pgxpool.Pool the seeders need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const upsertLeagueSQL = `
	INSERT INTO ` + config.LeaguesTable + ` (
		id, name, season, status, total_rosters, playoff_week_start, raw
	) VALUES ($1,$2,$3,$4,$5,$6,$7)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		season = EXCLUDED.season,
		status = EXCLUDED.status,
		total_rosters = EXCLUDED.total_rosters,
		playoff_week_start = EXCLUDED.playoff_week_start,
		raw = EXCLUDED.raw,
		updated_at = NOW()`

// UpsertLeague writes a canonical league to the leagues table.
func UpsertLeague(ctx context.Context, db DB, l provider.League) error {
	_, err := db.Exec(ctx, upsertLeagueSQL,
		l.ID, l.Name, l.Season, nilEmpty(l.Status), l.TotalRosters,
		l.PlayoffWeekStart, rawOrEmpty(l.Raw, "{}"),
	)
	return err
}

const upsertUserSQL = `
	INSERT INTO ` + config.UsersTable + ` (
		league_id, user_id, display_name, team_name, raw
	) VALUES ($1,$2,$3,$4,$5)
	ON CONFLICT (league_id, user_id) DO UPDATE SET
		display_name = EXCLUDED.display_name,
		team_name = EXCLUDED.team_name,
		raw = EXCLUDED.raw,
		updated_at = NOW()`

// UpsertUser writes a league member to the users table.
func UpsertUser(ctx context.Context, db DB, leagueID string, u provider.User) error {
	_, err := db.Exec(ctx, upsertUserSQL,
		leagueID, u.ID, u.DisplayName, nilEmpty(u.TeamName), rawOrEmpty(u.Raw, "{}"),
	)
	return err
}

const upsertRosterSQL = `
	INSERT INTO ` + config.RostersTable + ` (
		league_id, roster_id, owner_id, players, wins, losses, ties, points_for
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	ON CONFLICT (league_id, roster_id) DO UPDATE SET
		owner_id = EXCLUDED.owner_id,
		players = EXCLUDED.players,
		wins = EXCLUDED.wins,
		losses = EXCLUDED.losses,
		ties = EXCLUDED.ties,
		points_for = EXCLUDED.points_for,
		updated_at = NOW()`

// UpsertRoster writes a roster to the rosters table. An empty owner is stored
// as NULL so orphaned rosters drop out of every analytics query.
func UpsertRoster(ctx context.Context, db DB, leagueID string, r provider.Roster) error {
	players, _ := json.Marshal(nonNilSlice(r.Players))
	_, err := db.Exec(ctx, upsertRosterSQL,
		leagueID, r.ID, nilEmpty(r.OwnerID), players,
		r.Wins, r.Losses, r.Ties, r.PointsFor,
	)
	return err
}

const upsertMatchupSQL = `
	INSERT INTO ` + config.MatchupsTable + ` (
		league_id, week, roster_id, matchup_id, points, starters, players_points
	) VALUES ($1,$2,$3,$4,$5,$6,$7)
	ON CONFLICT (league_id, week, roster_id) DO UPDATE SET
		matchup_id = EXCLUDED.matchup_id,
		points = EXCLUDED.points,
		starters = EXCLUDED.starters,
		players_points = EXCLUDED.players_points,
		updated_at = NOW()`

// UpsertMatchup writes one roster's weekly matchup row.
func UpsertMatchup(ctx context.Context, db DB, leagueID string, m provider.Matchup) error {
	starters, _ := json.Marshal(nonNilSlice(m.Starters))
	pp := m.PlayersPoints
	if pp == nil {
		pp = map[string]float64{}
	}
	playersPoints, _ := json.Marshal(pp)
	_, err := db.Exec(ctx, upsertMatchupSQL,
		leagueID, m.Week, m.RosterID, m.MatchupID, m.Points, starters, playersPoints,
	)
	return err
}

const upsertPlayerSQL = `
	INSERT INTO ` + config.PlayersTable + ` (
		player_id, full_name, team, position, data
	) VALUES ($1,$2,$3,$4,$5)
	ON CONFLICT (player_id) DO UPDATE SET
		full_name = EXCLUDED.full_name,
		team = EXCLUDED.team,
		position = EXCLUDED.position,
		data = EXCLUDED.data,
		updated_at = NOW()`

// UpsertPlayers writes players in one batch round trip. It returns the
// number written before the first failure.
func UpsertPlayers(ctx context.Context, db DB, players []provider.Player) (int, error) {
	if len(players) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(upsertPlayerSQL,
			p.ID, p.FullName, nilEmpty(p.Team), nilEmpty(p.Position), rawOrEmpty(p.Raw, "{}"))
	}

	br := db.SendBatch(ctx, batch)
	defer br.Close()

	for i := range players {
		if _, err := br.Exec(); err != nil {
			return i, err
		}
	}
	return len(players), nil
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nonNilSlice ensures a nil slice marshals as [] rather than null.
func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func rawOrEmpty(raw json.RawMessage, empty string) []byte {
	if len(raw) == 0 {
		return []byte(empty)
	}
	return raw
}
