package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTeamData means a team id in a record has no name or history
	// entry. It points at a data gap upstream and is never recovered here.
	ErrMissingTeamData = errors.New("missing team data")

	// ErrInsufficientHistory means the simulator was asked to sample from a
	// team with no scored weeks.
	ErrInsufficientHistory = errors.New("insufficient scoring history")

	// ErrDegenerateStatistic means a ratio had a zero denominator that has
	// no documented sentinel (consistency with a zero mean).
	ErrDegenerateStatistic = errors.New("degenerate statistic")

	// ErrInvalidInput means the loaded data does not have the expected shape.
	ErrInvalidInput = errors.New("invalid input")
)

func missingTeam(id TeamID, what string) error {
	return fmt.Errorf("%w: team %q has no %s", ErrMissingTeamData, id, what)
}

// teamName resolves a display name or reports ErrMissingTeamData.
func teamName(names map[TeamID]string, id TeamID) (string, error) {
	name, ok := names[id]
	if !ok {
		return "", missingTeam(id, "name")
	}
	return name, nil
}
