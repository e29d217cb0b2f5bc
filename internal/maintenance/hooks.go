package maintenance

import (
	"log/slog"

	"github.com/albapepper/sleeper-insights/internal/cache"
)

// Purger is satisfied by *cache.Cache.
type Purger interface {
	Purge(prefix string) int
}

// InvalidateLeague drops every cached report for a league.
// Call this after a successful seed of that league.
func InvalidateLeague(c Purger, leagueID string, logger *slog.Logger) {
	if c == nil {
		return
	}
	n := c.Purge(cache.LeaguePrefix(leagueID))
	if n > 0 {
		logger.Info("Invalidated cached reports", "league_id", leagueID, "keys", n)
	}
}
