package maintenance

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/sleeper-insights/internal/cache"
	"github.com/albapepper/sleeper-insights/internal/provider"
)

type nopDB struct {
	mu    sync.Mutex
	execs int
}

func (d *nopDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.execs++
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (d *nopDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

type weekFetcher struct{ week int }

func (f weekFetcher) State(context.Context) (*provider.NFLState, error) {
	return &provider.NFLState{Week: f.week}, nil
}
func (weekFetcher) League(context.Context, string) (*provider.League, error) { return nil, nil }
func (weekFetcher) Users(context.Context, string) ([]provider.User, error)   { return nil, nil }
func (weekFetcher) Rosters(context.Context, string) ([]provider.Roster, error) {
	return []provider.Roster{{ID: 1, OwnerID: "u1"}, {ID: 2, OwnerID: "u2"}}, nil
}
func (weekFetcher) Matchups(_ context.Context, _ string, week int) ([]provider.Matchup, error) {
	g := 1
	return []provider.Matchup{
		{Week: week, RosterID: 1, MatchupID: &g, Points: 88},
		{Week: week, RosterID: 2, MatchupID: &g, Points: 91},
	}, nil
}
func (weekFetcher) Players(context.Context) ([]provider.Player, error) { return nil, nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncLeagues_InvalidatesCache(t *testing.T) {
	c := cache.New(true)
	t.Cleanup(c.Close)
	c.Set(cache.LeagueKey("L1", "luck"), []byte("old"), time.Hour)
	c.Set(cache.LeagueKey("L2", "luck"), []byte("other"), time.Hour)
	db := &nopDB{}

	syncLeagues(context.Background(), Deps{
		DB: db, Client: weekFetcher{week: 6}, Cache: c, Leagues: []string{"L1"},
	}, quietLogger())

	assert.Equal(t, 4, db.execs) // 2 rosters + 2 matchups
	_, _, ok := c.Get(cache.LeagueKey("L1", "luck"))
	assert.False(t, ok)
	_, _, ok = c.Get(cache.LeagueKey("L2", "luck"))
	assert.True(t, ok)
}

func TestInvalidateLeague_NilCache(t *testing.T) {
	assert.NotPanics(t, func() { InvalidateLeague(nil, "L1", quietLogger()) })
}

func TestRunLoop_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan time.Time)
	calls := make(chan struct{}, 2)
	done := make(chan struct{})

	go func() {
		runLoop(ctx, ch, "test", func() { calls <- struct{}{} })
		close(done)
	}()

	ch <- time.Now()
	<-calls
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "runLoop did not stop")
	}
}
