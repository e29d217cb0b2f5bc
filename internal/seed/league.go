package seed

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/sleeper-insights/internal/provider"
)

// Fetcher is the subset of the Sleeper client the seeders call.
type Fetcher interface {
	State(ctx context.Context) (*provider.NFLState, error)
	League(ctx context.Context, leagueID string) (*provider.League, error)
	Users(ctx context.Context, leagueID string) ([]provider.User, error)
	Rosters(ctx context.Context, leagueID string) ([]provider.Roster, error)
	Matchups(ctx context.Context, leagueID string, week int) ([]provider.Matchup, error)
	Players(ctx context.Context) ([]provider.Player, error)
}

// weekConcurrency bounds parallel week fetches. The client's limiter still
// governs the request rate.
const weekConcurrency = 4

// playerBatchSize bounds a single players batch.
const playerBatchSize = 500

// SeedLeague seeds league metadata, members, rosters and matchups for weeks
// 1..weeks. Future weeks are included so the remaining schedule is known.
//
// A failure to fetch or store the league itself aborts the run; everything
// after that is recorded in the result and skipped.
func SeedLeague(
	ctx context.Context,
	db DB,
	client Fetcher,
	leagueID string,
	weeks int,
	logger *slog.Logger,
) SeedResult {
	if logger == nil {
		logger = slog.Default()
	}
	var result SeedResult

	logger.Info("Seeding league", "league_id", leagueID, "weeks", weeks)

	// 1. League
	logger.Info("Phase 1/4: Seeding league...")
	league, err := client.League(ctx, leagueID)
	if err != nil {
		result.AddErrorf("fetch league %s: %v", leagueID, err)
		return result
	}
	if err := UpsertLeague(ctx, db, *league); err != nil {
		result.AddErrorf("upsert league %s: %v", leagueID, err)
		return result
	}
	result.LeaguesUpserted++
	logger.Info("League done", "name", league.Name, "season", league.Season,
		"playoff_week_start", league.PlayoffWeekStart)

	// 2. Users
	logger.Info("Phase 2/4: Seeding users...")
	users, err := client.Users(ctx, leagueID)
	if err != nil {
		result.AddErrorf("fetch users: %v", err)
	} else {
		for _, u := range users {
			if err := UpsertUser(ctx, db, leagueID, u); err != nil {
				result.AddErrorf("upsert user %s: %v", u.ID, err)
			} else {
				result.UsersUpserted++
			}
		}
	}
	logger.Info("Users done", "count", result.UsersUpserted)

	// 3. Rosters
	logger.Info("Phase 3/4: Seeding rosters...")
	result.Add(seedRosters(ctx, db, client, leagueID))
	logger.Info("Rosters done", "count", result.RostersUpserted)
	if result.RostersUpserted == 0 {
		result.AddError("no rosters stored, skipping matchups")
		return result
	}

	// 4. Matchups
	logger.Info("Phase 4/4: Seeding matchups...")
	result.Add(seedWeeks(ctx, db, client, leagueID, 1, weeks, logger))
	logger.Info("Matchups done", "count", result.MatchupsUpserted, "weeks", result.WeeksSynced)

	logger.Info("League seed complete", "league_id", leagueID, "summary", result.Summary())
	return result
}

// SeedWeek refreshes rosters and one week of matchups. week <= 0 resolves to
// the current NFL week from Sleeper's state endpoint.
func SeedWeek(
	ctx context.Context,
	db DB,
	client Fetcher,
	leagueID string,
	week int,
	logger *slog.Logger,
) SeedResult {
	if logger == nil {
		logger = slog.Default()
	}
	var result SeedResult

	if week <= 0 {
		w, err := CurrentWeek(ctx, client)
		if err != nil {
			result.AddErrorf("resolve current week: %v", err)
			return result
		}
		week = w
	}

	logger.Info("Seeding week", "league_id", leagueID, "week", week)
	result.Add(seedRosters(ctx, db, client, leagueID))
	result.Add(seedWeek(ctx, db, client, leagueID, week))
	logger.Info("Week seed complete", "league_id", leagueID, "week", week, "summary", result.Summary())
	return result
}

// SeedPlayers seeds the NFL player directory in batches.
func SeedPlayers(ctx context.Context, db DB, client Fetcher, logger *slog.Logger) SeedResult {
	if logger == nil {
		logger = slog.Default()
	}
	var result SeedResult

	logger.Info("Fetching NFL player directory...")
	players, err := client.Players(ctx)
	if err != nil {
		result.AddErrorf("fetch players: %v", err)
		return result
	}

	for start := 0; start < len(players); start += playerBatchSize {
		end := min(start+playerBatchSize, len(players))
		n, err := UpsertPlayers(ctx, db, players[start:end])
		result.PlayersUpserted += n
		if err != nil {
			result.AddErrorf("upsert players batch %d-%d: %v", start, end, err)
		}
		logger.Info("Player progress", "count", result.PlayersUpserted, "total", len(players))
	}

	logger.Info("Player seed complete", "summary", result.Summary())
	return result
}

// CurrentWeek returns the current NFL week, clamped to at least 1 so the
// off-season still resolves to a valid week.
func CurrentWeek(ctx context.Context, client Fetcher) (int, error) {
	st, err := client.State(ctx)
	if err != nil {
		return 0, err
	}
	return max(st.Week, 1), nil
}

func seedRosters(ctx context.Context, db DB, client Fetcher, leagueID string) SeedResult {
	var result SeedResult
	rosters, err := client.Rosters(ctx, leagueID)
	if err != nil {
		result.AddErrorf("fetch rosters: %v", err)
		return result
	}
	for _, r := range rosters {
		if err := UpsertRoster(ctx, db, leagueID, r); err != nil {
			result.AddErrorf("upsert roster %d: %v", r.ID, err)
		} else {
			result.RostersUpserted++
		}
	}
	return result
}

// seedWeeks fans out over [from, to]. Per-week results land in their own
// slot and are merged in week order, so the result is deterministic.
func seedWeeks(ctx context.Context, db DB, client Fetcher, leagueID string, from, to int, logger *slog.Logger) SeedResult {
	var result SeedResult
	if to < from {
		return result
	}

	perWeek := make([]SeedResult, to-from+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(weekConcurrency)
	for week := from; week <= to; week++ {
		g.Go(func() error {
			perWeek[week-from] = seedWeek(gctx, db, client, leagueID, week)
			logger.Info("Week synced", "week", week, "matchups", perWeek[week-from].MatchupsUpserted)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range perWeek {
		result.Add(r)
	}
	return result
}

func seedWeek(ctx context.Context, db DB, client Fetcher, leagueID string, week int) SeedResult {
	var result SeedResult
	rows, err := client.Matchups(ctx, leagueID, week)
	if err != nil {
		result.AddErrorf("fetch week %d matchups: %v", week, err)
		return result
	}
	for _, m := range rows {
		if err := UpsertMatchup(ctx, db, leagueID, m); err != nil {
			result.AddErrorf("upsert week %d roster %d: %v", week, m.RosterID, err)
		} else {
			result.MatchupsUpserted++
		}
	}
	if len(rows) > 0 {
		result.WeeksSynced++
	}
	return result
}
