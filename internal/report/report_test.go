package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/sleeper-insights/internal/analytics"
)

type fakeSource struct {
	weeks     analytics.WeeklyScores
	pairs     []analytics.PairedMatchup
	names     map[analytics.TeamID]string
	schedule  []analytics.RemainingMatchup
	seasonEnd int
	err       error
	lastFrom  int
	lastTo    int
}

func (f *fakeSource) WeeklyScores(context.Context) (analytics.WeeklyScores, error) {
	return f.weeks, f.err
}

func (f *fakeSource) PairedMatchups(context.Context) ([]analytics.PairedMatchup, error) {
	return f.pairs, f.err
}

func (f *fakeSource) TeamNames(context.Context) (map[analytics.TeamID]string, error) {
	return f.names, f.err
}

func (f *fakeSource) CurrentRecords(ctx context.Context) (analytics.ActualRecords, error) {
	pairs, err := f.PairedMatchups(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Reconcile(pairs), nil
}

func (f *fakeSource) RemainingMatchups(_ context.Context, from, to int) ([]analytics.RemainingMatchup, error) {
	f.lastFrom, f.lastTo = from, to
	var out []analytics.RemainingMatchup
	for _, m := range f.schedule {
		if m.Week >= from && m.Week <= to {
			out = append(out, m)
		}
	}
	return out, f.err
}

func (f *fakeSource) RegularSeasonEnd(context.Context) (int, error) {
	return f.seasonEnd, f.err
}

func sampleSource() *fakeSource {
	return &fakeSource{
		weeks: analytics.WeeklyScores{
			1: {{TeamID: "u1", Points: 120}, {TeamID: "u2", Points: 110}, {TeamID: "u3", Points: 95}, {TeamID: "u4", Points: 80}},
			2: {{TeamID: "u3", Points: 130}, {TeamID: "u1", Points: 101}, {TeamID: "u4", Points: 99}, {TeamID: "u2", Points: 90}},
		},
		pairs: []analytics.PairedMatchup{
			analytics.NewPairedMatchup(1, "u1", 120, "u2", 110),
			analytics.NewPairedMatchup(1, "u3", 95, "u4", 80),
			analytics.NewPairedMatchup(2, "u1", 101, "u3", 130),
			analytics.NewPairedMatchup(2, "u2", 90, "u4", 99),
		},
		names: map[analytics.TeamID]string{"u1": "Aces", "u2": "Bombers", "u3": "Crew", "u4": "Dynasty"},
		schedule: []analytics.RemainingMatchup{
			analytics.NewRemainingMatchup(3, "u1", "u4"),
			analytics.NewRemainingMatchup(3, "u2", "u3"),
			analytics.NewRemainingMatchup(4, "u1", "u2"),
			analytics.NewRemainingMatchup(4, "u3", "u4"),
		},
		seasonEnd: 4,
	}
}

func seeded(seed int64) *int64 { return &seed }

func TestStandings(t *testing.T) {
	b := NewBuilder("L1", sampleSource(), Options{})

	rep, err := b.Standings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "L1", rep.LeagueID)
	assert.Equal(t, 2, rep.Weeks)
	require.Len(t, rep.Standings, 4)

	// u1: 3+2 all-play wins, u3: 1+3.
	assert.Equal(t, analytics.TeamID("u1"), rep.Standings[0].TeamID)
	assert.Equal(t, 5, rep.Standings[0].AllPlay.Wins)
	assert.Equal(t, analytics.Record{Wins: 1, Losses: 1}, rep.Standings[0].Actual)
}

func TestLuck(t *testing.T) {
	rep, err := NewBuilder("L1", sampleSource(), Options{}).Luck(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Entries, 4)
	for i := 1; i < len(rep.Entries); i++ {
		assert.GreaterOrEqual(t, rep.Entries[i-1].Luck, rep.Entries[i].Luck)
	}
}

func TestConsistency(t *testing.T) {
	rep, err := NewBuilder("L1", sampleSource(), Options{}).Consistency(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Entries, 4)
	for _, e := range rep.Entries {
		assert.True(t, e.Defined)
		assert.Equal(t, 2, e.Observations)
	}
}

func TestProjections_DefaultsWeekRange(t *testing.T) {
	src := sampleSource()
	b := NewBuilder("L1", src, Options{Simulations: 500, Seed: seeded(7)})

	rep, err := b.Projections(context.Background(), ProjectionParams{})
	require.NoError(t, err)

	assert.Equal(t, 3, rep.FromWeek)
	assert.Equal(t, 4, rep.ToWeek)
	assert.Equal(t, 3, src.lastFrom)
	assert.Equal(t, 4, src.lastTo)
	assert.Equal(t, 500, rep.Simulations)
	require.NotNil(t, rep.Seed)
	assert.Equal(t, int64(7), *rep.Seed)
	assert.Len(t, rep.Matchups, 4)
	require.Len(t, rep.Projections, 4)

	total := 0.0
	for _, p := range rep.Projections {
		assert.InDelta(t, float64(p.CurrentWins)+p.ExpectedWins, p.ProjectedWins, 1e-12)
		total += p.ExpectedWins
	}
	assert.InDelta(t, 4.0, total, 1e-9)
}

func TestProjections_SeedIsReproducible(t *testing.T) {
	params := ProjectionParams{Simulations: 1000, Seed: seeded(99), Workers: 3}

	a, err := NewBuilder("L1", sampleSource(), Options{}).Projections(context.Background(), params)
	require.NoError(t, err)
	b, err := NewBuilder("L1", sampleSource(), Options{}).Projections(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestProjections_FallsBackToConfiguredSeasonEnd(t *testing.T) {
	src := sampleSource()
	src.seasonEnd = 0
	b := NewBuilder("L1", src, Options{RegularSeasonEnd: 3, Simulations: 10, Seed: seeded(1)})

	rep, err := b.Projections(context.Background(), ProjectionParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.ToWeek)
	assert.Len(t, rep.Matchups, 2)
}

func TestProjections_InvalidRange(t *testing.T) {
	b := NewBuilder("L1", sampleSource(), Options{})

	_, err := b.Projections(context.Background(), ProjectionParams{FromWeek: 9, ToWeek: 4})
	assert.ErrorIs(t, err, analytics.ErrInvalidInput)
}

func TestProjections_InsufficientHistory(t *testing.T) {
	src := sampleSource()
	src.names["u5"] = "Expansion"
	src.schedule = append(src.schedule, analytics.NewRemainingMatchup(3, "u4", "u5"))
	b := NewBuilder("L1", src, Options{Simulations: 10, Seed: seeded(1)})

	_, err := b.Projections(context.Background(), ProjectionParams{})
	assert.ErrorIs(t, err, analytics.ErrInsufficientHistory)

	rep, err := b.Projections(context.Background(), ProjectionParams{SkipInsufficient: true})
	require.NoError(t, err)
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, analytics.TeamID("u5"), rep.Skipped[0].TeamB)
}

func TestSummary(t *testing.T) {
	rep, err := NewBuilder("L1", sampleSource(), Options{}).Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, rep.WeeksPlayed)
	assert.Equal(t, 4, rep.Teams)
	assert.Equal(t, 12, rep.AllPlayGamesPerWeek)
	assert.Equal(t, 24, rep.TotalAllPlayGames)
	assert.Equal(t, 24, rep.ObservedAllPlayGames)
	assert.Equal(t, 2, rep.LastScoredWeek)
	assert.Equal(t, 4, rep.RegularSeasonEnd)
}

func TestUnknownLeague(t *testing.T) {
	b := NewBuilder("nope", &fakeSource{}, Options{})

	_, err := b.Standings(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
	_, err = b.Summary(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSourceErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	src := sampleSource()
	src.err = boom

	_, err := NewBuilder("L1", src, Options{}).Luck(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestMissingTeamName(t *testing.T) {
	src := sampleSource()
	delete(src.names, "u4")

	_, err := NewBuilder("L1", src, Options{}).Standings(context.Background())
	assert.ErrorIs(t, err, analytics.ErrMissingTeamData)
}
