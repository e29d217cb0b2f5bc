package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SyncChannel is the Postgres NOTIFY channel announcing fresh matchup rows.
const SyncChannel = "league_synced"

// SyncEvent is the JSON payload sent on SyncChannel.
type SyncEvent struct {
	LeagueID  string `json:"league_id"`
	Weeks     []int  `json:"weeks,omitempty"`
	Matchups  int    `json:"matchups"`
	Timestamp int64  `json:"ts"`
}

// NotifySynced announces a completed sync to listeners in other processes.
func NotifySynced(ctx context.Context, db DB, event SyncEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode sync event: %w", err)
	}
	if _, err := db.Exec(ctx, "SELECT pg_notify($1, $2)", SyncChannel, string(payload)); err != nil {
		return fmt.Errorf("notify %s: %w", SyncChannel, err)
	}
	return nil
}
