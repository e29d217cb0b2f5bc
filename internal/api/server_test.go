package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/sleeper-insights/internal/analytics"
	"github.com/albapepper/sleeper-insights/internal/api/handler"
	"github.com/albapepper/sleeper-insights/internal/config"
	"github.com/albapepper/sleeper-insights/internal/report"
)

type emptySource struct{}

func (emptySource) WeeklyScores(context.Context) (analytics.WeeklyScores, error) { return nil, nil }
func (emptySource) PairedMatchups(context.Context) ([]analytics.PairedMatchup, error) {
	return nil, nil
}
func (emptySource) TeamNames(context.Context) (map[analytics.TeamID]string, error)  { return nil, nil }
func (emptySource) CurrentRecords(context.Context) (analytics.ActualRecords, error) { return nil, nil }
func (emptySource) RemainingMatchups(context.Context, int, int) ([]analytics.RemainingMatchup, error) {
	return nil, nil
}
func (emptySource) RegularSeasonEnd(context.Context) (int, error) { return 0, nil }

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigins:  []string{"http://localhost:5173"},
		RateLimitEnabled:  true,
		RateLimitRequests: 4,
		RateLimitWindow:   time.Minute,
	}
}

func testDeps() handler.Deps {
	return handler.Deps{Sources: func(string) report.Source { return emptySource{} }}
}

func TestRouter_Routes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = false
	router := NewRouter(testDeps(), cfg)

	tests := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/health", http.StatusOK},
		{"/api/v1/leagues/123/standings", http.StatusNotFound},
		{"/api/v1/leagues/123/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, tt.status, rec.Code, tt.path)
		assert.NotEmpty(t, rec.Header().Get("X-Process-Time"), tt.path)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router := NewRouter(testDeps(), testConfig())

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}

func TestRouter_CORS(t *testing.T) {
	router := NewRouter(testDeps(), testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
