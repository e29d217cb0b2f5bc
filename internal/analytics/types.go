// Package analytics derives league statistics from weekly scoring data:
// all-play records, head-to-head records, luck index, scoring consistency
// and bootstrap win-probability projections.
//
// Every function here is a pure transformation over fully loaded input.
// Nothing reads from the network or the database, and nothing keeps state
// between calls. The only source of randomness is the one configured on a
// Simulator.
package analytics

import "sort"

// TeamID identifies a team by its Sleeper owner (user) id.
type TeamID string

// Score is one team's points for one week.
type Score struct {
	TeamID TeamID  `json:"team_id"`
	Points float64 `json:"points"`
}

// WeeklyScores maps week number to the scores of teams that played that
// week. Zero-point rows are expected to be filtered out by the loader.
type WeeklyScores map[int][]Score

// Weeks returns the week numbers in ascending order.
func (w WeeklyScores) Weeks() []int {
	weeks := make([]int, 0, len(w))
	for wk := range w {
		weeks = append(weeks, wk)
	}
	sort.Ints(weeks)
	return weeks
}

// PairedMatchup is a decided head-to-head game. TeamA always sorts before
// TeamB so a pairing is counted once regardless of row order.
type PairedMatchup struct {
	Week    int     `json:"week"`
	TeamA   TeamID  `json:"team_a"`
	TeamB   TeamID  `json:"team_b"`
	PointsA float64 `json:"points_a"`
	PointsB float64 `json:"points_b"`
}

// NewPairedMatchup orders the two sides by team id.
func NewPairedMatchup(week int, x TeamID, xPoints float64, y TeamID, yPoints float64) PairedMatchup {
	if y < x {
		x, y = y, x
		xPoints, yPoints = yPoints, xPoints
	}
	return PairedMatchup{Week: week, TeamA: x, TeamB: y, PointsA: xPoints, PointsB: yPoints}
}

// RemainingMatchup is a scheduled pairing that has not been played yet.
type RemainingMatchup struct {
	Week  int    `json:"week"`
	TeamA TeamID `json:"team_a"`
	TeamB TeamID `json:"team_b"`
}

// NewRemainingMatchup orders the two sides by team id.
func NewRemainingMatchup(week int, x, y TeamID) RemainingMatchup {
	if y < x {
		x, y = y, x
	}
	return RemainingMatchup{Week: week, TeamA: x, TeamB: y}
}

// Record is a win/loss/tie tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Games returns wins + losses + ties.
func (r Record) Games() int { return r.Wins + r.Losses + r.Ties }

// WinPct returns wins / (wins + losses). Ties do not count.
func (r Record) WinPct() WinPct {
	decided := r.Wins + r.Losses
	if decided == 0 {
		return WinPct{}
	}
	return WinPct{Value: float64(r.Wins) / float64(decided), Decided: decided}
}

func (r *Record) add(o Record) {
	r.Wins += o.Wins
	r.Losses += o.Losses
	r.Ties += o.Ties
}

// WinPct is a win percentage together with the number of decided games it
// was computed from. Value is 0 when Decided is 0, which callers can tell
// apart from a real 0.000 through Defined.
type WinPct struct {
	Value   float64 `json:"value"`
	Decided int     `json:"decided"`
}

// Defined reports whether at least one game was decided.
func (p WinPct) Defined() bool { return p.Decided > 0 }

// ActualRecords maps teams to their real head-to-head record.
type ActualRecords map[TeamID]Record

// Get returns the team's record, or an empty record if it never played.
func (a ActualRecords) Get(id TeamID) Record { return a[id] }

// AllPlayRecord is a team's record had it played every other team every
// week, plus its weekly ranks and season points.
type AllPlayRecord struct {
	Record
	WeeklyRanks []int   `json:"weekly_ranks"`
	TotalPoints float64 `json:"total_points"`
}

// AverageRank is the mean weekly rank, 0 when no weeks were played.
func (r AllPlayRecord) AverageRank() float64 {
	if len(r.WeeklyRanks) == 0 {
		return 0
	}
	sum := 0
	for _, rk := range r.WeeklyRanks {
		sum += rk
	}
	return float64(sum) / float64(len(r.WeeklyRanks))
}

// sortedTeamIDs returns the map keys in ascending order.
func sortedTeamIDs[V any](m map[TeamID]V) []TeamID {
	ids := make([]TeamID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Histories returns each team's points in week order.
func Histories(weeks WeeklyScores) map[TeamID][]float64 {
	out := make(map[TeamID][]float64)
	for _, wk := range weeks.Weeks() {
		for _, s := range weeks[wk] {
			out[s.TeamID] = append(out[s.TeamID], s.Points)
		}
	}
	return out
}
