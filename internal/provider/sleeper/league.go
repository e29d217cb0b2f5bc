package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/albapepper/sleeper-insights/internal/provider"
)

// State fetches the current NFL season state.
func (c *Client) State(ctx context.Context) (*provider.NFLState, error) {
	var st provider.NFLState
	if err := c.get(ctx, "/state/nfl", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

type rawLeague struct {
	LeagueID     string                 `json:"league_id"`
	Name         string                 `json:"name"`
	Season       string                 `json:"season"`
	Status       string                 `json:"status"`
	TotalRosters int                    `json:"total_rosters"`
	Settings     map[string]interface{} `json:"settings"`
}

// League fetches league metadata, including the playoff start week.
func (c *Client) League(ctx context.Context, leagueID string) (*provider.League, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/league/"+leagueID, &raw); err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, fmt.Errorf("league %s not found", leagueID)
	}

	var l rawLeague
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decode league %s: %w", leagueID, err)
	}
	playoff, _ := provider.ExtractInt(l.Settings["playoff_week_start"])

	return &provider.League{
		ID:               l.LeagueID,
		Name:             l.Name,
		Season:           l.Season,
		Status:           l.Status,
		TotalRosters:     l.TotalRosters,
		PlayoffWeekStart: playoff,
		Raw:              raw,
	}, nil
}

type rawUser struct {
	UserID      string                 `json:"user_id"`
	DisplayName string                 `json:"display_name"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Users fetches the league's members.
func (c *Client) Users(ctx context.Context, leagueID string) ([]provider.User, error) {
	var raws []json.RawMessage
	if err := c.get(ctx, "/league/"+leagueID+"/users", &raws); err != nil {
		return nil, err
	}

	users := make([]provider.User, 0, len(raws))
	for _, raw := range raws {
		var u rawUser
		if err := json.Unmarshal(raw, &u); err != nil {
			c.logger.Warn("skipping malformed user", "league", leagueID, "error", err)
			continue
		}
		if u.UserID == "" {
			continue
		}
		teamName, _ := u.Metadata["team_name"].(string)
		users = append(users, provider.User{
			ID:          u.UserID,
			DisplayName: u.DisplayName,
			TeamName:    teamName,
			Raw:         raw,
		})
	}
	return users, nil
}

type rawRoster struct {
	RosterID int                    `json:"roster_id"`
	OwnerID  *string                `json:"owner_id"`
	Players  []string               `json:"players"`
	Settings map[string]interface{} `json:"settings"`
}

// Rosters fetches the league's rosters. Orphaned rosters keep an empty owner.
func (c *Client) Rosters(ctx context.Context, leagueID string) ([]provider.Roster, error) {
	var raws []rawRoster
	if err := c.get(ctx, "/league/"+leagueID+"/rosters", &raws); err != nil {
		return nil, err
	}

	rosters := make([]provider.Roster, 0, len(raws))
	for _, r := range raws {
		owner := ""
		if r.OwnerID != nil {
			owner = *r.OwnerID
		}
		wins, _ := provider.ExtractInt(r.Settings["wins"])
		losses, _ := provider.ExtractInt(r.Settings["losses"])
		ties, _ := provider.ExtractInt(r.Settings["ties"])
		rosters = append(rosters, provider.Roster{
			ID:        r.RosterID,
			OwnerID:   owner,
			Players:   r.Players,
			Wins:      wins,
			Losses:    losses,
			Ties:      ties,
			PointsFor: provider.SplitDecimal(r.Settings["fpts"], r.Settings["fpts_decimal"]),
		})
	}
	sort.Slice(rosters, func(i, j int) bool { return rosters[i].ID < rosters[j].ID })
	return rosters, nil
}

type rawMatchup struct {
	RosterID      int                `json:"roster_id"`
	MatchupID     *int               `json:"matchup_id"`
	Points        interface{}        `json:"points"`
	CustomPoints  interface{}        `json:"custom_points"`
	Starters      []string           `json:"starters"`
	PlayersPoints map[string]float64 `json:"players_points"`
}

// Matchups fetches one week of matchup rows. A commissioner override in
// custom_points replaces points.
func (c *Client) Matchups(ctx context.Context, leagueID string, week int) ([]provider.Matchup, error) {
	if week < 1 {
		return nil, fmt.Errorf("invalid week %d", week)
	}

	var raws []rawMatchup
	if err := c.get(ctx, fmt.Sprintf("/league/%s/matchups/%d", leagueID, week), &raws); err != nil {
		return nil, err
	}

	out := make([]provider.Matchup, 0, len(raws))
	for _, m := range raws {
		pts, _ := provider.ExtractValue(m.Points)
		if custom, ok := provider.ExtractValue(m.CustomPoints); ok {
			pts = custom
		}
		out = append(out, provider.Matchup{
			Week:          week,
			RosterID:      m.RosterID,
			MatchupID:     m.MatchupID,
			Points:        pts,
			Starters:      m.Starters,
			PlayersPoints: m.PlayersPoints,
		})
	}
	return out, nil
}

type rawPlayer struct {
	FullName  string  `json:"full_name"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Team      *string `json:"team"`
	Position  *string `json:"position"`
}

// Players fetches the full NFL player directory (several MB). Results are
// sorted by player id.
func (c *Client) Players(ctx context.Context) ([]provider.Player, error) {
	var raws map[string]json.RawMessage
	if err := c.get(ctx, "/players/nfl", &raws); err != nil {
		return nil, err
	}

	players := make([]provider.Player, 0, len(raws))
	for id, raw := range raws {
		var p rawPlayer
		if err := json.Unmarshal(raw, &p); err != nil {
			c.logger.Warn("skipping malformed player", "player_id", id, "error", err)
			continue
		}
		name := p.FullName
		if name == "" {
			name = strings.TrimSpace(p.FirstName + " " + p.LastName)
		}
		players = append(players, provider.Player{
			ID:       id,
			FullName: name,
			Team:     deref(p.Team),
			Position: deref(p.Position),
			Raw:      raw,
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
