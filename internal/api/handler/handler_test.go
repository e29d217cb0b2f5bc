package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/sleeper-insights/internal/analytics"
	"github.com/albapepper/sleeper-insights/internal/api/respond"
	"github.com/albapepper/sleeper-insights/internal/cache"
	"github.com/albapepper/sleeper-insights/internal/report"
)

type fakeSource struct {
	names map[analytics.TeamID]string
	weeks analytics.WeeklyScores
	pairs []analytics.PairedMatchup
	sched []analytics.RemainingMatchup
	err   error
	loads int
}

func (f *fakeSource) WeeklyScores(context.Context) (analytics.WeeklyScores, error) {
	return f.weeks, f.err
}

func (f *fakeSource) PairedMatchups(context.Context) ([]analytics.PairedMatchup, error) {
	return f.pairs, f.err
}

func (f *fakeSource) TeamNames(context.Context) (map[analytics.TeamID]string, error) {
	f.loads++
	return f.names, f.err
}

func (f *fakeSource) CurrentRecords(ctx context.Context) (analytics.ActualRecords, error) {
	return analytics.Reconcile(f.pairs), f.err
}

func (f *fakeSource) RemainingMatchups(_ context.Context, from, to int) ([]analytics.RemainingMatchup, error) {
	var out []analytics.RemainingMatchup
	for _, m := range f.sched {
		if m.Week >= from && m.Week <= to {
			out = append(out, m)
		}
	}
	return out, f.err
}

func (f *fakeSource) RegularSeasonEnd(context.Context) (int, error) { return 3, f.err }

func leagueSource() *fakeSource {
	return &fakeSource{
		names: map[analytics.TeamID]string{"u1": "Aces", "u2": "Bombers"},
		weeks: analytics.WeeklyScores{
			1: {{TeamID: "u1", Points: 120}, {TeamID: "u2", Points: 100}},
			2: {{TeamID: "u2", Points: 111}, {TeamID: "u1", Points: 99}},
		},
		pairs: []analytics.PairedMatchup{
			analytics.NewPairedMatchup(1, "u1", 120, "u2", 100),
			analytics.NewPairedMatchup(2, "u1", 99, "u2", 111),
		},
		sched: []analytics.RemainingMatchup{analytics.NewRemainingMatchup(3, "u1", "u2")},
	}
}

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck(context.Context) error { return f.err }

func newTestRouter(t *testing.T, src *fakeSource, mutate ...func(*Deps)) http.Handler {
	t.Helper()
	c := cache.New(true)
	t.Cleanup(c.Close)
	d := Deps{
		DB:      fakeDB{},
		Sources: func(string) report.Source { return src },
		Cache:   c,
		Options: report.Options{Simulations: 200},
	}
	for _, m := range mutate {
		m(&d)
	}
	h := New(d)

	r := chi.NewRouter()
	r.Get("/", h.Root)
	r.Get("/health/db", h.HealthCheckDB)
	r.Get("/health/cache", h.HealthCheckCache)
	r.Route("/leagues/{leagueID}", func(r chi.Router) {
		r.Get("/standings", h.GetStandings)
		r.Get("/luck", h.GetLuck)
		r.Get("/consistency", h.GetConsistency)
		r.Get("/projections", h.GetProjections)
		r.Get("/summary", h.GetSummary)
	})
	return r
}

func get(t *testing.T, h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return string(body.Error.Code)
}

func TestGetStandings(t *testing.T) {
	src := leagueSource()
	router := newTestRouter(t, src)

	rec := get(t, router, "/leagues/123/standings")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	var rep report.StandingsReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "123", rep.LeagueID)
	require.Len(t, rep.Standings, 2)
	assert.Equal(t, analytics.TeamID("u1"), rep.Standings[0].TeamID) // ties on pct, more points
}

func TestGetStandings_CacheAndETag(t *testing.T) {
	src := leagueSource()
	router := newTestRouter(t, src)

	first := get(t, router, "/leagues/123/standings")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")

	second := get(t, router, "/leagues/123/standings")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	third := get(t, router, "/leagues/123/standings", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, third.Code)
	assert.Equal(t, 1, src.loads)
}

func TestGetLuckConsistencySummary(t *testing.T) {
	router := newTestRouter(t, leagueSource())

	for _, path := range []string{"/leagues/123/luck", "/leagues/123/consistency", "/leagues/123/summary"} {
		rec := get(t, router, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		src    *fakeSource
		path   string
		status int
		code   string
	}{
		{"bad league id", leagueSource(), "/leagues/abc/luck", http.StatusBadRequest, "INVALID_LEAGUE_ID"},
		{"unknown league", &fakeSource{}, "/leagues/123/luck", http.StatusNotFound, "LEAGUE_NOT_FOUND"},
		{"loader failure", &fakeSource{err: errors.New("db down")}, "/leagues/123/luck", http.StatusInternalServerError, "INTERNAL_ERROR"},
		{
			"missing name",
			func() *fakeSource { s := leagueSource(); delete(s.names, "u2"); return s }(),
			"/leagues/123/standings", http.StatusUnprocessableEntity, "MISSING_TEAM_DATA",
		},
		{
			"degenerate",
			&fakeSource{
				names: map[analytics.TeamID]string{"u1": "Aces"},
				weeks: analytics.WeeklyScores{1: {{TeamID: "u1", Points: 0}}, 2: {{TeamID: "u1", Points: 0}}},
			},
			"/leagues/123/consistency", http.StatusUnprocessableEntity, "DEGENERATE_STATISTIC",
		},
		{
			"negative score",
			&fakeSource{
				names: map[analytics.TeamID]string{"u1": "Aces"},
				weeks: analytics.WeeklyScores{1: {{TeamID: "u1", Points: 100}}, 2: {{TeamID: "u1", Points: -4}}},
			},
			"/leagues/123/consistency", http.StatusBadRequest, "INVALID_INPUT",
		},
		{"bad simulations", leagueSource(), "/leagues/123/projections?simulations=0", http.StatusBadRequest, "INVALID_PARAM"},
		{"bad seed", leagueSource(), "/leagues/123/projections?seed=x", http.StatusBadRequest, "INVALID_PARAM"},
		{"bad range", leagueSource(), "/leagues/123/projections?from_week=5&to_week=2", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(t, tt.src), tt.path)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestClassifyError(t *testing.T) {
	wrapped := fmt.Errorf("consistency: team %q: %w", "7", analytics.ErrDegenerateStatistic)
	code, _ := classifyError(wrapped)
	assert.Equal(t, respond.CodeDegenerateStatistic, code)

	code, _ = classifyError(fmt.Errorf("load: %w", report.ErrNoData))
	assert.Equal(t, respond.CodeLeagueNotFound, code)

	code, msg := classifyError(errors.New("connection reset"))
	assert.Equal(t, respond.CodeInternal, code)
	assert.Equal(t, "Failed to build report", msg)
}

func TestGetProjections_Seeded(t *testing.T) {
	src := leagueSource()
	router := newTestRouter(t, src)

	rec := get(t, router, "/leagues/123/projections?seed=5&simulations=1000")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep report.ProjectionsReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 3, rep.FromWeek)
	assert.Equal(t, 3, rep.ToWeek)
	assert.Equal(t, 1000, rep.Simulations)
	require.Len(t, rep.Matchups, 1)
	require.Len(t, rep.Projections, 2)

	again := get(t, router, "/leagues/123/projections?seed=5&simulations=1000")
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.Equal(t, rec.Body.String(), again.Body.String())
}

func TestGetProjections_UnseededNotCached(t *testing.T) {
	router := newTestRouter(t, leagueSource())

	get(t, router, "/leagues/123/projections")
	rec := get(t, router, "/leagues/123/projections")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
}

func TestGetProjections_UsesCurrentWeek(t *testing.T) {
	src := leagueSource()
	src.sched = append(src.sched, analytics.NewRemainingMatchup(2, "u1", "u2"))
	router := newTestRouter(t, src, func(d *Deps) {
		d.CurrentWeek = func(context.Context) (int, error) { return 2, nil }
	})

	rec := get(t, router, "/leagues/123/projections?seed=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep report.ProjectionsReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, 2, rep.FromWeek)
	assert.Len(t, rep.Matchups, 2)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, leagueSource())
	assert.Equal(t, http.StatusOK, get(t, router, "/").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/health/db").Code)
	assert.Equal(t, http.StatusOK, get(t, router, "/health/cache").Code)

	down := newTestRouter(t, leagueSource(), func(d *Deps) { d.DB = fakeDB{err: errors.New("down")} })
	assert.Equal(t, http.StatusServiceUnavailable, get(t, down, "/health/db").Code)
}

func TestCachedWeek(t *testing.T) {
	calls := 0
	fn := CachedWeek(func(context.Context) (int, error) {
		calls++
		return 7, nil
	}, time.Hour)

	for i := 0; i < 3; i++ {
		w, err := fn(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, w)
	}
	assert.Equal(t, 1, calls)
}
