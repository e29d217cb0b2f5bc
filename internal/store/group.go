package store

import "github.com/albapepper/sleeper-insights/internal/analytics"

type weekScore struct {
	week   int
	team   string
	points float64
}

type scheduleRow struct {
	week  int
	group int
	team  string
}

// groupScores buckets rows by week, keeping row order inside each week.
func groupScores(rows []weekScore) analytics.WeeklyScores {
	weeks := make(analytics.WeeklyScores)
	for _, r := range rows {
		weeks[r.week] = append(weeks[r.week], analytics.Score{
			TeamID: analytics.TeamID(r.team),
			Points: r.points,
		})
	}
	return weeks
}

// groupSchedule pairs rows that share (week, matchup group). Rows must be
// ordered by week then group. Groups that do not hold exactly two teams
// (byes, half-filled leagues) are dropped.
func groupSchedule(rows []scheduleRow) []analytics.RemainingMatchup {
	var out []analytics.RemainingMatchup
	for i := 0; i < len(rows); {
		j := i + 1
		for j < len(rows) && rows[j].week == rows[i].week && rows[j].group == rows[i].group {
			j++
		}
		if j-i == 2 {
			out = append(out, analytics.NewRemainingMatchup(
				rows[i].week, analytics.TeamID(rows[i].team), analytics.TeamID(rows[i+1].team)))
		}
		i = j
	}
	return out
}
