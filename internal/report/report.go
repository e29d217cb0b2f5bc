// Package report assembles analytics results for one league from a scoring
// dataset Source. The API and the analyze CLI both encode its structs.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/albapepper/sleeper-insights/internal/analytics"
)

// ErrNoData means the league is unknown to the Source.
var ErrNoData = errors.New("no data for league")

// Source is the scoring dataset loader contract.
type Source interface {
	WeeklyScores(ctx context.Context) (analytics.WeeklyScores, error)
	PairedMatchups(ctx context.Context) ([]analytics.PairedMatchup, error)
	TeamNames(ctx context.Context) (map[analytics.TeamID]string, error)
	CurrentRecords(ctx context.Context) (analytics.ActualRecords, error)
	RemainingMatchups(ctx context.Context, fromWeek, toWeek int) ([]analytics.RemainingMatchup, error)
	// RegularSeasonEnd returns 0 when the league has no playoff start.
	RegularSeasonEnd(ctx context.Context) (int, error)
}

// Options carries engine defaults, normally from config.Config.
type Options struct {
	Simulations      int
	Workers          int
	Seed             *int64
	RegularSeasonEnd int
}

// Builder runs the analytics engine over a Source.
type Builder struct {
	leagueID string
	src      Source
	opts     Options
}

// NewBuilder returns a Builder for leagueID.
func NewBuilder(leagueID string, src Source, opts Options) *Builder {
	if opts.Simulations <= 0 {
		opts.Simulations = analytics.DefaultSimulations
	}
	if opts.RegularSeasonEnd <= 0 {
		opts.RegularSeasonEnd = 14
	}
	return &Builder{leagueID: leagueID, src: src, opts: opts}
}

// dataset is what every report needs.
type dataset struct {
	weeks analytics.WeeklyScores
	names map[analytics.TeamID]string
}

func (b *Builder) load(ctx context.Context) (*dataset, error) {
	names, err := b.src.TeamNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load team names: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("league %s: %w", b.leagueID, ErrNoData)
	}
	weeks, err := b.src.WeeklyScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("load weekly scores: %w", err)
	}
	return &dataset{weeks: weeks, names: names}, nil
}

// StandingsReport is the all-play ("true") standings table.
type StandingsReport struct {
	LeagueID  string                     `json:"league_id"`
	Weeks     int                        `json:"weeks"`
	Standings []analytics.StandingsEntry `json:"standings"`
}

// Standings ranks teams by all-play win percentage.
func (b *Builder) Standings(ctx context.Context) (*StandingsReport, error) {
	ds, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	allPlay, err := analytics.AllPlay(ds.weeks)
	if err != nil {
		return nil, err
	}
	actual, err := b.src.CurrentRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current records: %w", err)
	}
	rows, err := analytics.TrueStandings(allPlay, actual, ds.names)
	if err != nil {
		return nil, err
	}
	return &StandingsReport{LeagueID: b.leagueID, Weeks: len(ds.weeks), Standings: rows}, nil
}

// LuckReport compares head-to-head results with all-play results.
type LuckReport struct {
	LeagueID string                `json:"league_id"`
	Weeks    int                   `json:"weeks"`
	Entries  []analytics.LuckEntry `json:"entries"`
}

// Luck computes the luck index for every team with a head-to-head record.
func (b *Builder) Luck(ctx context.Context) (*LuckReport, error) {
	ds, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	allPlay, err := analytics.AllPlay(ds.weeks)
	if err != nil {
		return nil, err
	}
	pairs, err := b.src.PairedMatchups(ctx)
	if err != nil {
		return nil, fmt.Errorf("load paired matchups: %w", err)
	}
	entries, err := analytics.LuckIndex(analytics.Reconcile(pairs), allPlay, ds.names)
	if err != nil {
		return nil, err
	}
	return &LuckReport{LeagueID: b.leagueID, Weeks: len(ds.weeks), Entries: entries}, nil
}

// ConsistencyReport ranks teams by coefficient of variation.
type ConsistencyReport struct {
	LeagueID string                       `json:"league_id"`
	Weeks    int                          `json:"weeks"`
	Entries  []analytics.ConsistencyEntry `json:"entries"`
}

// Consistency ranks weekly scoring variability, most consistent first.
func (b *Builder) Consistency(ctx context.Context) (*ConsistencyReport, error) {
	ds, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := analytics.Consistency(analytics.Histories(ds.weeks), ds.names)
	if err != nil {
		return nil, err
	}
	return &ConsistencyReport{LeagueID: b.leagueID, Weeks: len(ds.weeks), Entries: entries}, nil
}

// ProjectionParams overrides Options for a single projection run. Zero
// values fall back to the builder's options. FromWeek 0 means the week after
// the last scored week; ToWeek 0 means the regular-season end.
type ProjectionParams struct {
	FromWeek         int
	ToWeek           int
	Simulations      int
	Workers          int
	Seed             *int64
	SkipInsufficient bool
}

// ProjectionsReport is the simulated remainder of the regular season.
type ProjectionsReport struct {
	LeagueID    string                         `json:"league_id"`
	FromWeek    int                            `json:"from_week"`
	ToWeek      int                            `json:"to_week"`
	Simulations int                            `json:"simulations"`
	Seed        *int64                         `json:"seed,omitempty"`
	Matchups    []analytics.MatchupProbability `json:"matchups"`
	Skipped     []analytics.SkippedMatchup     `json:"skipped,omitempty"`
	Projections []analytics.ProjectionEntry    `json:"projections"`
}

// Projections simulates the remaining schedule and projects final wins.
func (b *Builder) Projections(ctx context.Context, p ProjectionParams) (*ProjectionsReport, error) {
	ds, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	from := p.FromWeek
	if from <= 0 {
		from = lastWeek(ds.weeks) + 1
	}
	to := p.ToWeek
	if to <= 0 {
		if to, err = b.regularSeasonEnd(ctx); err != nil {
			return nil, err
		}
	}
	if from < 1 || to < from-1 {
		return nil, fmt.Errorf("week range %d-%d: %w", from, to, analytics.ErrInvalidInput)
	}

	current, err := b.src.CurrentRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load current records: %w", err)
	}
	remaining, err := b.src.RemainingMatchups(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load remaining matchups: %w", err)
	}

	sim, err := analytics.NewSimulator(b.simOptions(p)...)
	if err != nil {
		return nil, err
	}
	season, err := sim.SimulateSeason(analytics.Histories(ds.weeks), remaining)
	if err != nil {
		return nil, err
	}
	projections, err := analytics.Project(season, current, ds.names)
	if err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == nil {
		seed = b.opts.Seed
	}
	return &ProjectionsReport{
		LeagueID:    b.leagueID,
		FromWeek:    from,
		ToWeek:      to,
		Simulations: season.Simulations,
		Seed:        seed,
		Matchups:    season.Matchups,
		Skipped:     season.Skipped,
		Projections: projections,
	}, nil
}

func (b *Builder) simOptions(p ProjectionParams) []analytics.Option {
	n := p.Simulations
	if n <= 0 {
		n = b.opts.Simulations
	}
	workers := p.Workers
	if workers <= 0 {
		workers = b.opts.Workers
	}
	opts := []analytics.Option{analytics.WithSimulations(n), analytics.WithWorkers(workers)}

	if p.Seed != nil {
		opts = append(opts, analytics.WithSeed(*p.Seed))
	} else if b.opts.Seed != nil {
		opts = append(opts, analytics.WithSeed(*b.opts.Seed))
	}
	if p.SkipInsufficient {
		opts = append(opts, analytics.WithSkipInsufficient())
	}
	return opts
}

func (b *Builder) regularSeasonEnd(ctx context.Context) (int, error) {
	end, err := b.src.RegularSeasonEnd(ctx)
	if err != nil {
		return 0, fmt.Errorf("load regular season end: %w", err)
	}
	if end <= 0 {
		end = b.opts.RegularSeasonEnd
	}
	return end, nil
}

// SummaryReport carries league-wide counts.
type SummaryReport struct {
	LeagueID         string `json:"league_id"`
	LastScoredWeek   int    `json:"last_scored_week"`
	RegularSeasonEnd int    `json:"regular_season_end"`
	analytics.Summary
}

// Summary reports weeks played, team count and all-play game totals.
func (b *Builder) Summary(ctx context.Context) (*SummaryReport, error) {
	ds, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	allPlay, err := analytics.AllPlay(ds.weeks)
	if err != nil {
		return nil, err
	}
	end, err := b.regularSeasonEnd(ctx)
	if err != nil {
		return nil, err
	}
	return &SummaryReport{
		LeagueID:         b.leagueID,
		LastScoredWeek:   lastWeek(ds.weeks),
		RegularSeasonEnd: end,
		Summary:          analytics.Summarize(ds.weeks, allPlay),
	}, nil
}

func lastWeek(weeks analytics.WeeklyScores) int {
	ws := weeks.Weeks()
	if len(ws) == 0 {
		return 0
	}
	return ws[len(ws)-1]
}
