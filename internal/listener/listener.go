// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps the
// API's report cache in step with ingestion. It holds a dedicated pgx
// connection (not from the pool) listening on the `league_synced` channel.
//
// The ingest CLI and the maintenance sync run seed, which fires pg_notify
// after new matchup rows land. This consumer receives the event and purges
// the league's cached reports, so a sync in another process is visible on
// the next request.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/sleeper-insights/internal/maintenance"
	"github.com/albapepper/sleeper-insights/internal/seed"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Start opens a dedicated connection and listens on seed.SyncChannel. It
// reconnects automatically on connection loss. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, c maintenance.Purger, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, c, logger)
		if ctx.Err() != nil {
			logger.Info("Sync listener stopped (context cancelled)")
			return
		}

		logger.Error("Sync listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, c maintenance.Purger, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+seed.SyncChannel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", seed.SyncChannel, err)
	}
	logger.Info("Sync listener connected", "channel", seed.SyncChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		handlePayload(notification.Payload, c, logger)
	}
}

// handlePayload decodes one event and invalidates the league's reports.
// It reports whether the payload was usable.
func handlePayload(payload string, c maintenance.Purger, logger *slog.Logger) bool {
	var event seed.SyncEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.LeagueID == "" {
		logger.Warn("Failed to parse sync event", "payload", payload, "error", err)
		return false
	}

	logger.Info("Sync event received",
		"league_id", event.LeagueID,
		"weeks", event.Weeks,
		"matchups", event.Matchups)
	maintenance.InvalidateLeague(c, event.LeagueID, logger)
	return true
}
