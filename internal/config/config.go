// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api, cmd/ingest and cmd/analyze.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Table names, matching db/schema.go
// --------------------------------------------------------------------------

const (
	LeaguesTable  = "leagues"
	UsersTable    = "users"
	RostersTable  = "rosters"
	MatchupsTable = "matchups"
	PlayersTable  = "players"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Sleeper
	SleeperBaseURL           string
	SleeperLeagueID          string
	SleeperRequestsPerMinute int
	SeasonWeeks              int
	SyncInterval             time.Duration

	// Analytics engine
	SimulationCount      int
	SimulationWorkers    int
	RegularSeasonEndWeek int
	RandomSeed           *int64

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	seed, err := envInt64Ptr("RANDOM_SEED")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		SleeperBaseURL:           envOr("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"),
		SleeperLeagueID:          envOr("SLEEPER_LEAGUE_ID", ""),
		SleeperRequestsPerMinute: envInt("SLEEPER_REQUESTS_PER_MINUTE", 600),
		SeasonWeeks:              envInt("SEASON_WEEKS", 17),
		SyncInterval:             time.Duration(envInt("SYNC_INTERVAL_MINUTES", 30)) * time.Minute,

		SimulationCount:      envInt("SIMULATION_COUNT", 10000),
		SimulationWorkers:    envInt("SIMULATION_WORKERS", 1),
		RegularSeasonEndWeek: envInt("REGULAR_SEASON_END_WEEK", 14),
		RandomSeed:           seed,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if cfg.SimulationCount < 1 {
		return nil, fmt.Errorf("SIMULATION_COUNT must be positive, got %d", cfg.SimulationCount)
	}
	if cfg.RegularSeasonEndWeek < 1 {
		return nil, fmt.Errorf("REGULAR_SEASON_END_WEEK must be positive, got %d", cfg.RegularSeasonEndWeek)
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

// envInt64Ptr returns nil when the variable is unset. Unlike the other
// helpers a malformed value is an error: silently dropping a seed would
// make a run look reproducible when it is not.
func envInt64Ptr(key string) (*int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	return &n, nil
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
