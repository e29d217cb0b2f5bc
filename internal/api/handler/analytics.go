package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/sleeper-insights/internal/analytics"
	"github.com/albapepper/sleeper-insights/internal/api/respond"
	"github.com/albapepper/sleeper-insights/internal/cache"
	"github.com/albapepper/sleeper-insights/internal/report"
)

// maxSimulations caps per-request simulation counts.
const maxSimulations = 200000

// GetStandings returns all-play standings.
// @Summary All-play standings
// @Description Ranks every team by its record had it played the whole league each week. Ties on win percentage break by total points, then team id.
// @Tags analytics
// @Produce json
// @Param leagueID path string true "Sleeper league id"
// @Success 200 {object} report.StandingsReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, "standings", cache.TTLAnalytics, func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Standings(ctx)
	})
}

// GetLuck returns the luck index.
// @Summary Luck index
// @Description Actual head-to-head win percentage minus all-play win percentage, with a luck band per team.
// @Tags analytics
// @Produce json
// @Param leagueID path string true "Sleeper league id"
// @Success 200 {object} report.LuckReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/luck [get]
func (h *Handler) GetLuck(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, "luck", cache.TTLAnalytics, func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Luck(ctx)
	})
}

// GetConsistency returns the consistency ranking.
// @Summary Scoring consistency
// @Description Coefficient of variation of weekly points, most consistent first. Teams with fewer than two scored weeks are listed last with defined=false.
// @Tags analytics
// @Produce json
// @Param leagueID path string true "Sleeper league id"
// @Success 200 {object} report.ConsistencyReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/consistency [get]
func (h *Handler) GetConsistency(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, "consistency", cache.TTLAnalytics, func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Consistency(ctx)
	})
}

// GetSummary returns league-wide counts.
// @Summary League summary
// @Description Weeks played, team count and all-play game totals.
// @Tags analytics
// @Produce json
// @Param leagueID path string true "Sleeper league id"
// @Success 200 {object} report.SummaryReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, "summary", cache.TTLAnalytics, func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Summary(ctx)
	})
}

// GetProjections simulates the rest of the regular season.
// @Summary Season projections
// @Description Bootstrap-resamples each team's weekly scores to estimate win probabilities for remaining matchups and projected final wins. Responses are cached only when a seed makes them reproducible.
// @Tags analytics
// @Produce json
// @Param leagueID path string true "Sleeper league id"
// @Param from_week query int false "First week to simulate (default: current NFL week)"
// @Param to_week query int false "Last week to simulate (default: regular-season end)"
// @Param simulations query int false "Draws per matchup (default from SIMULATION_COUNT)"
// @Param seed query int false "Random seed for reproducible output"
// @Param skip_insufficient query bool false "Skip matchups involving teams with no history"
// @Success 200 {object} report.ProjectionsReport
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /leagues/{leagueID}/projections [get]
func (h *Handler) GetProjections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		params report.ProjectionParams
		err    error
	)
	if params.FromWeek, err = intParam(q.Get("from_week"), 1, 0); err != nil {
		respond.WriteErrorDetail(w, respond.CodeInvalidParam, "from_week must be a positive integer", err.Error())
		return
	}
	if params.ToWeek, err = intParam(q.Get("to_week"), 1, 0); err != nil {
		respond.WriteErrorDetail(w, respond.CodeInvalidParam, "to_week must be a positive integer", err.Error())
		return
	}
	if params.Simulations, err = intParam(q.Get("simulations"), 1, maxSimulations); err != nil {
		respond.WriteErrorDetail(w, respond.CodeInvalidParam,
			"simulations must be between 1 and "+strconv.Itoa(maxSimulations), err.Error())
		return
	}
	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			respond.WriteErrorDetail(w, respond.CodeInvalidParam, "seed must be an integer", err.Error())
			return
		}
		params.Seed = &seed
	}
	if s := q.Get("skip_insufficient"); s != "" {
		if params.SkipInsufficient, err = strconv.ParseBool(s); err != nil {
			respond.WriteErrorDetail(w, respond.CodeInvalidParam, "skip_insufficient must be a boolean", err.Error())
			return
		}
	}

	if params.FromWeek == 0 && h.currentWeek != nil {
		if week, err := h.currentWeek(r.Context()); err == nil {
			params.FromWeek = week
		} else {
			h.logger.Warn("current week lookup failed, using last scored week", "error", err)
		}
	}

	// Without a seed every run differs, so there is nothing to cache.
	deterministic := params.Seed != nil || h.opts.Seed != nil
	key := ""
	if deterministic {
		key = "projections:" + q.Encode() + ":from=" + strconv.Itoa(params.FromWeek)
	}

	h.serveReport(w, r, key, cache.TTLProjections, func(ctx context.Context, b *report.Builder) (any, error) {
		return b.Projections(ctx, params)
	})
}

// serveReport resolves the league, serves from cache when possible, and
// otherwise builds, encodes and caches the report. An empty key disables
// caching for the request.
func (h *Handler) serveReport(
	w http.ResponseWriter,
	r *http.Request,
	key string,
	ttl time.Duration,
	build func(context.Context, *report.Builder) (any, error),
) {
	leagueID := chi.URLParam(r, "leagueID")
	if !validLeagueID(leagueID) {
		respond.WriteError(w, respond.CodeInvalidLeagueID, "league id must be numeric")
		return
	}

	cacheKey := ""
	if key != "" {
		cacheKey = cache.LeagueKey(leagueID, key)
		if data, etag, ok := h.cache.Get(cacheKey); ok {
			if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
				respond.WriteNotModified(w, etag, ttl)
				return
			}
			respond.WriteJSON(w, data, etag, ttl, true)
			return
		}
	}

	b := report.NewBuilder(leagueID, h.sources(leagueID), h.opts)
	v, err := build(r.Context(), b)
	if err != nil {
		h.writeAnalyticsError(w, leagueID, err)
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("encode report", "league_id", leagueID, "error", err)
		respond.WriteError(w, respond.CodeEncodeFailed, "Failed to encode response")
		return
	}

	if cacheKey == "" {
		respond.WriteJSON(w, data, cache.ComputeETag(data), 0, false)
		return
	}
	etag := h.cache.Set(cacheKey, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag, ttl)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

// analyticsErrors maps engine and loader sentinels to API error codes.
// Order matters: the first errors.Is match wins.
var analyticsErrors = []struct {
	target  error
	code    respond.Code
	message string
}{
	{report.ErrNoData, respond.CodeLeagueNotFound, "No data stored for league"},
	{analytics.ErrInvalidInput, respond.CodeInvalidInput, "Invalid analytics input"},
	{analytics.ErrMissingTeamData, respond.CodeMissingTeamData, "A team has no name mapping"},
	{analytics.ErrInsufficientHistory, respond.CodeInsufficientHistory, "A team has no scoring history"},
	{analytics.ErrDegenerateStatistic, respond.CodeDegenerateStatistic, "Statistic is undefined for this data"},
}

// classifyError returns the error code and message for a report failure.
// Unrecognised errors are internal.
func classifyError(err error) (respond.Code, string) {
	for _, e := range analyticsErrors {
		if errors.Is(err, e.target) {
			return e.code, e.message
		}
	}
	return respond.CodeInternal, "Failed to build report"
}

func (h *Handler) writeAnalyticsError(w http.ResponseWriter, leagueID string, err error) {
	code, message := classifyError(err)
	switch code {
	case respond.CodeInternal:
		h.logger.Error("build report", "league_id", leagueID, "error", err)
		respond.WriteError(w, code, message)
	case respond.CodeLeagueNotFound:
		respond.WriteError(w, code, message+" "+leagueID)
	default:
		respond.WriteErrorDetail(w, code, message, err.Error())
	}
}

// intParam parses an optional integer query value. Empty means 0. max 0
// means unbounded.
func intParam(s string, lo, hi int) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < lo || (hi > 0 && n > hi) {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func validLeagueID(id string) bool {
	if id == "" || len(id) > 32 {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CachedWeek memoizes a WeekResolver for ttl. Failed lookups are not cached.
func CachedWeek(fn WeekResolver, ttl time.Duration) WeekResolver {
	var (
		mu      sync.Mutex
		week    int
		fetched time.Time
	)
	return func(ctx context.Context) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		if !fetched.IsZero() && time.Since(fetched) < ttl {
			return week, nil
		}
		w, err := fn(ctx)
		if err != nil {
			return 0, err
		}
		week, fetched = w, time.Now()
		return week, nil
	}
}
