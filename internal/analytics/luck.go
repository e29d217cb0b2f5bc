package analytics

import "sort"

// LuckBand buckets a luck index for display.
type LuckBand string

const (
	VeryLucky   LuckBand = "very_lucky"
	Lucky       LuckBand = "lucky"
	Neutral     LuckBand = "neutral"
	Unlucky     LuckBand = "unlucky"
	VeryUnlucky LuckBand = "very_unlucky"
)

// ClassifyLuck maps a luck index to its band:
//
//	> 0.100           very lucky
//	(0.050, 0.100]    lucky
//	[-0.050, 0.050]   neutral
//	[-0.100, -0.050)  unlucky
//	< -0.100          very unlucky
func ClassifyLuck(luck float64) LuckBand {
	switch {
	case luck > 0.100:
		return VeryLucky
	case luck > 0.050:
		return Lucky
	case luck >= -0.050:
		return Neutral
	case luck >= -0.100:
		return Unlucky
	default:
		return VeryUnlucky
	}
}

// LuckEntry compares a team's real win rate with its all-play win rate.
// A positive Luck means the team won more often than its scoring alone
// would have earned against the whole league.
type LuckEntry struct {
	TeamID     TeamID   `json:"team_id"`
	Name       string   `json:"name"`
	Actual     Record   `json:"actual"`
	AllPlay    Record   `json:"all_play"`
	ActualPct  WinPct   `json:"actual_pct"`
	AllPlayPct WinPct   `json:"all_play_pct"`
	Luck       float64  `json:"luck_index"`
	Band       LuckBand `json:"band"`
}

// LuckIndex computes a LuckEntry for every team with an actual record,
// sorted from luckiest to unluckiest. A team without an all-play record is
// treated as having no decided all-play games.
func LuckIndex(actual ActualRecords, allPlay map[TeamID]AllPlayRecord, names map[TeamID]string) ([]LuckEntry, error) {
	entries := make([]LuckEntry, 0, len(actual))
	for _, id := range sortedTeamIDs(actual) {
		name, err := teamName(names, id)
		if err != nil {
			return nil, err
		}

		rec := actual[id]
		ap := allPlay[id].Record
		actualPct, allPlayPct := rec.WinPct(), ap.WinPct()
		luck := actualPct.Value - allPlayPct.Value

		entries = append(entries, LuckEntry{
			TeamID:     id,
			Name:       name,
			Actual:     rec,
			AllPlay:    ap,
			ActualPct:  actualPct,
			AllPlayPct: allPlayPct,
			Luck:       luck,
			Band:       ClassifyLuck(luck),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Luck > entries[j].Luck
	})
	return entries, nil
}

// StandingsEntry is one row of the all-play ("true") standings.
type StandingsEntry struct {
	Rank        int     `json:"rank"`
	TeamID      TeamID  `json:"team_id"`
	Name        string  `json:"name"`
	AllPlay     Record  `json:"all_play"`
	AllPlayPct  WinPct  `json:"all_play_pct"`
	Actual      Record  `json:"actual"`
	AverageRank float64 `json:"average_rank"`
	WeeksScored int     `json:"weeks_scored"`
	TotalPoints float64 `json:"total_points"`
}

// TrueStandings orders teams by all-play win percentage, then by total
// points, then by team id.
func TrueStandings(allPlay map[TeamID]AllPlayRecord, actual ActualRecords, names map[TeamID]string) ([]StandingsEntry, error) {
	entries := make([]StandingsEntry, 0, len(allPlay))
	for _, id := range sortedTeamIDs(allPlay) {
		name, err := teamName(names, id)
		if err != nil {
			return nil, err
		}
		rec := allPlay[id]
		entries = append(entries, StandingsEntry{
			TeamID:      id,
			Name:        name,
			AllPlay:     rec.Record,
			AllPlayPct:  rec.WinPct(),
			Actual:      actual.Get(id),
			AverageRank: rec.AverageRank(),
			WeeksScored: len(rec.WeeklyRanks),
			TotalPoints: rec.TotalPoints,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.AllPlayPct.Value != b.AllPlayPct.Value {
			return a.AllPlayPct.Value > b.AllPlayPct.Value
		}
		return a.TotalPoints > b.TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
