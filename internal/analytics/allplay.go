package analytics

import (
	"fmt"
	"math"
	"sort"
)

// AllPlay computes every team's all-play record across all weeks.
//
// Each week, every team is compared with every other team that played that
// week, so a week with N teams yields N·(N−1) directed results. Weekly ranks
// come from a stable descending sort on points: teams with equal points keep
// their input order and still get distinct consecutive ranks.
func AllPlay(weeks WeeklyScores) (map[TeamID]AllPlayRecord, error) {
	records := make(map[TeamID]AllPlayRecord)

	for _, wk := range weeks.Weeks() {
		scores := weeks[wk]
		if err := validateWeek(wk, scores); err != nil {
			return nil, err
		}

		ranks := weeklyRanks(scores)
		results := AllPlayWeek(scores)
		for _, s := range scores {
			rec := records[s.TeamID]
			rec.add(results[s.TeamID])
			rec.WeeklyRanks = append(rec.WeeklyRanks, ranks[s.TeamID])
			rec.TotalPoints += s.Points
			records[s.TeamID] = rec
		}
	}
	return records, nil
}

// AllPlayWeek returns each team's all-play result for a single week.
func AllPlayWeek(scores []Score) map[TeamID]Record {
	out := make(map[TeamID]Record, len(scores))
	for i, a := range scores {
		var r Record
		for j, b := range scores {
			if i == j {
				continue
			}
			switch {
			case a.Points > b.Points:
				r.Wins++
			case a.Points < b.Points:
				r.Losses++
			default:
				r.Ties++
			}
		}
		out[a.TeamID] = r
	}
	return out
}

func weeklyRanks(scores []Score) map[TeamID]int {
	sorted := make([]Score, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	ranks := make(map[TeamID]int, len(sorted))
	for i, s := range sorted {
		ranks[s.TeamID] = i + 1
	}
	return ranks
}

func validateWeek(week int, scores []Score) error {
	if week <= 0 {
		return fmt.Errorf("%w: week %d", ErrInvalidInput, week)
	}
	seen := make(map[TeamID]struct{}, len(scores))
	for _, s := range scores {
		if !validPoints(s.Points) {
			return fmt.Errorf("%w: team %q scored %.2f in week %d", ErrInvalidInput, s.TeamID, s.Points, week)
		}
		if _, dup := seen[s.TeamID]; dup {
			return fmt.Errorf("%w: team %q appears twice in week %d", ErrInvalidInput, s.TeamID, week)
		}
		seen[s.TeamID] = struct{}{}
	}
	return nil
}

// validPoints rejects negative, NaN and infinite scores.
func validPoints(p float64) bool {
	return p >= 0 && !math.IsInf(p, 1)
}

// Summary holds league-wide counts for the all-play view.
type Summary struct {
	WeeksPlayed          int `json:"weeks_played"`
	Teams                int `json:"teams"`
	AllPlayGamesPerWeek  int `json:"all_play_games_per_week"`
	TotalAllPlayGames    int `json:"total_all_play_games"`
	ObservedAllPlayGames int `json:"observed_all_play_games"`
}

// Summarize reports how many weeks and teams the all-play records cover.
// AllPlayGamesPerWeek and TotalAllPlayGames assume a full field every week;
// ObservedAllPlayGames counts the comparisons that actually happened.
func Summarize(weeks WeeklyScores, records map[TeamID]AllPlayRecord) Summary {
	teams := len(records)
	s := Summary{
		WeeksPlayed:         len(weeks),
		Teams:               teams,
		AllPlayGamesPerWeek: teams * (teams - 1),
	}
	if teams == 0 {
		s.AllPlayGamesPerWeek = 0
	}
	s.TotalAllPlayGames = s.WeeksPlayed * s.AllPlayGamesPerWeek
	for _, r := range records {
		s.ObservedAllPlayGames += r.Games()
	}
	return s
}
