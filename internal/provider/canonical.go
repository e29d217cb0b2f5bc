// Package provider defines canonical data types that the Sleeper client
// normalizes into. These structs are the contract between the client and the
// seed runner: the client outputs these, seeders write them to Postgres.
package provider

import "encoding/json"

// NFLState is the subset of Sleeper's state/nfl response the service uses.
type NFLState struct {
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`
	Week       int    `json:"week"`
	LegWeek    int    `json:"leg"`
}

// League is the canonical league shape written to the leagues table.
type League struct {
	ID               string          `json:"league_id"`
	Name             string          `json:"name"`
	Season           string          `json:"season"`
	Status           string          `json:"status"`
	TotalRosters     int             `json:"total_rosters"`
	PlayoffWeekStart int             `json:"playoff_week_start"`
	Raw              json.RawMessage `json:"raw,omitempty"`
}

// RegularSeasonEnd returns the last regular-season week, or 0 when the
// league has not configured a playoff start.
func (l League) RegularSeasonEnd() int {
	if l.PlayoffWeekStart <= 1 {
		return 0
	}
	return l.PlayoffWeekStart - 1
}

// User is a league member. TeamName falls back to DisplayName.
type User struct {
	ID          string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	TeamName    string          `json:"team_name,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// Name returns the label shown in reports.
func (u User) Name() string {
	if u.TeamName != "" {
		return u.TeamName
	}
	return u.DisplayName
}

// Roster ties a roster slot to its owning user.
type Roster struct {
	ID        int      `json:"roster_id"`
	OwnerID   string   `json:"owner_id"`
	Players   []string `json:"players"`
	Wins      int      `json:"wins"`
	Losses    int      `json:"losses"`
	Ties      int      `json:"ties"`
	PointsFor float64  `json:"fpts"`
}

// Matchup is one roster's row for one week. MatchupID pairs two rosters;
// nil means a bye or an unscheduled week.
type Matchup struct {
	Week          int                `json:"week"`
	RosterID      int                `json:"roster_id"`
	MatchupID     *int               `json:"matchup_id,omitempty"`
	Points        float64            `json:"points"`
	Starters      []string           `json:"starters"`
	PlayersPoints map[string]float64 `json:"players_points"`
}

// Player is the canonical player profile shape written to the players table.
type Player struct {
	ID       string          `json:"player_id"`
	FullName string          `json:"full_name"`
	Team     string          `json:"team,omitempty"`
	Position string          `json:"position,omitempty"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}
