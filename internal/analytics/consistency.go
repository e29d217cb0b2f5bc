package analytics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// minConsistencyObservations is the fewest scored weeks a sample standard
// deviation can be computed from.
const minConsistencyObservations = 2

// ConsistencyEntry is a team's coefficient of variation (sample stdev over
// mean). Lower is steadier. When Defined is false the team had fewer than
// two scored weeks and Consistency holds the 0 sentinel.
type ConsistencyEntry struct {
	TeamID       TeamID  `json:"team_id"`
	Name         string  `json:"name"`
	Observations int     `json:"observations"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"stddev"`
	Consistency  float64 `json:"consistency"`
	Defined      bool    `json:"defined"`
}

// Consistency ranks teams from steadiest to most volatile. Teams without
// enough observations come last. A zero mean over two or more weeks fails
// with ErrDegenerateStatistic; a negative or non-finite score fails with
// ErrInvalidInput.
func Consistency(history map[TeamID][]float64, names map[TeamID]string) ([]ConsistencyEntry, error) {
	entries := make([]ConsistencyEntry, 0, len(history))
	for _, id := range sortedTeamIDs(history) {
		name, err := teamName(names, id)
		if err != nil {
			return nil, err
		}
		e, err := consistencyOf(history[id])
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", id, err)
		}
		e.TeamID, e.Name = id, name
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Defined != b.Defined {
			return a.Defined
		}
		return a.Consistency < b.Consistency
	})
	return entries, nil
}

func consistencyOf(points []float64) (ConsistencyEntry, error) {
	e := ConsistencyEntry{Observations: len(points)}
	for i, p := range points {
		if !validPoints(p) {
			return e, fmt.Errorf("%w: observation %d is %v", ErrInvalidInput, i, p)
		}
	}
	if len(points) == 0 {
		return e, nil
	}
	if len(points) < minConsistencyObservations {
		e.Mean = points[0]
		return e, nil
	}

	mean, std := stat.MeanStdDev(points, nil)
	if mean == 0 {
		return e, fmt.Errorf("%w: zero mean over %d weeks", ErrDegenerateStatistic, len(points))
	}
	e.Mean, e.StdDev = mean, std
	e.Consistency = std / mean
	e.Defined = true
	return e, nil
}
