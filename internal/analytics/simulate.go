package analytics

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// DefaultSimulations is the number of resampled games per matchup.
const DefaultSimulations = 10000

// Simulator estimates matchup win probabilities by resampling each team's
// own scoring history with replacement. A Simulator owns its random source
// and is not safe for concurrent use.
type Simulator struct {
	simulations      int
	workers          int
	skipInsufficient bool
	rng              *rand.Rand
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSimulations sets the number of draws per matchup.
func WithSimulations(n int) Option {
	return func(s *Simulator) { s.simulations = n }
}

// WithSeed makes runs reproducible.
func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects the random source directly.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) { s.rng = r }
}

// WithWorkers simulates up to n matchups in parallel. Results do not depend
// on n: every matchup gets its own sub-seed drawn from the configured source
// before any work starts.
func WithWorkers(n int) Option {
	return func(s *Simulator) { s.workers = n }
}

// WithSkipInsufficient records matchups involving a team with no history
// in SeasonSimulation.Skipped instead of failing the whole run.
func WithSkipInsufficient() Option {
	return func(s *Simulator) { s.skipInsufficient = true }
}

// NewSimulator builds a Simulator. Without WithSeed or WithRand it seeds
// from the clock.
func NewSimulator(opts ...Option) (*Simulator, error) {
	s := &Simulator{simulations: DefaultSimulations, workers: 1}
	for _, opt := range opts {
		opt(s)
	}
	if s.simulations < 1 {
		return nil, fmt.Errorf("%w: simulation count %d, must be at least 1", ErrInvalidInput, s.simulations)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s, nil
}

// Simulations returns the configured draws per matchup.
func (s *Simulator) Simulations() int { return s.simulations }

// WinProbability returns the probability that a team with history a beats
// a team with history b. Ties in a draw count as half a win.
func (s *Simulator) WinProbability(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("%w: cannot resample an empty history", ErrInsufficientHistory)
	}
	return winProbability(s.rng, a, b, s.simulations), nil
}

func winProbability(rng *rand.Rand, a, b []float64, n int) float64 {
	wins, ties := 0, 0
	for i := 0; i < n; i++ {
		x := a[rng.Intn(len(a))]
		y := b[rng.Intn(len(b))]
		switch {
		case x > y:
			wins++
		case x == y:
			ties++
		}
	}
	return (float64(wins) + 0.5*float64(ties)) / float64(n)
}

// MatchupProbability is the simulated outcome of one remaining matchup.
type MatchupProbability struct {
	Week     int     `json:"week"`
	TeamA    TeamID  `json:"team_a"`
	TeamB    TeamID  `json:"team_b"`
	WinProbA float64 `json:"win_prob_a"`
	WinProbB float64 `json:"win_prob_b"`
	AvgA     float64 `json:"avg_a"`
	AvgB     float64 `json:"avg_b"`
}

// SkippedMatchup is a remaining matchup that could not be simulated.
type SkippedMatchup struct {
	RemainingMatchup
	Reason string `json:"reason"`
}

// SeasonSimulation is the outcome of simulating every remaining matchup.
// ExpectedWins holds real-valued totals, not rounded.
type SeasonSimulation struct {
	Simulations  int                  `json:"simulations"`
	Matchups     []MatchupProbability `json:"matchups"`
	ExpectedWins map[TeamID]float64   `json:"expected_wins"`
	Skipped      []SkippedMatchup     `json:"skipped,omitempty"`
}

// SimulateSeason simulates each remaining matchup and sums every team's
// win probabilities into expected additional wins.
func (s *Simulator) SimulateSeason(history map[TeamID][]float64, remaining []RemainingMatchup) (*SeasonSimulation, error) {
	result := &SeasonSimulation{
		Simulations:  s.simulations,
		ExpectedWins: make(map[TeamID]float64),
	}

	playable := make([]RemainingMatchup, 0, len(remaining))
	for _, m := range remaining {
		if m.Week <= 0 || m.TeamA == m.TeamB {
			return nil, fmt.Errorf("%w: matchup week %d %q vs %q", ErrInvalidInput, m.Week, m.TeamA, m.TeamB)
		}
		if err := checkHistory(history, m); err != nil {
			if !s.skipInsufficient {
				return nil, err
			}
			result.Skipped = append(result.Skipped, SkippedMatchup{RemainingMatchup: m, Reason: err.Error()})
			continue
		}
		playable = append(playable, m)
	}

	seeds := make([]int64, len(playable))
	for i := range seeds {
		seeds[i] = s.rng.Int63()
	}

	probs := make([]MatchupProbability, len(playable))
	simulate := func(i int) {
		m := playable[i]
		a, b := history[m.TeamA], history[m.TeamB]
		p := winProbability(rand.New(rand.NewSource(seeds[i])), a, b, s.simulations)
		probs[i] = MatchupProbability{
			Week:     m.Week,
			TeamA:    m.TeamA,
			TeamB:    m.TeamB,
			WinProbA: p,
			WinProbB: 1 - p,
			AvgA:     stat.Mean(a, nil),
			AvgB:     stat.Mean(b, nil),
		}
	}

	if s.workers == 1 {
		for i := range playable {
			simulate(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for i := range playable {
			g.Go(func() error {
				simulate(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, p := range probs {
		result.ExpectedWins[p.TeamA] += p.WinProbA
		result.ExpectedWins[p.TeamB] += p.WinProbB
	}
	result.Matchups = probs
	return result, nil
}

func checkHistory(history map[TeamID][]float64, m RemainingMatchup) error {
	for _, id := range []TeamID{m.TeamA, m.TeamB} {
		if len(history[id]) == 0 {
			return fmt.Errorf("%w: team %q has no scored weeks (week %d matchup)", ErrInsufficientHistory, id, m.Week)
		}
	}
	return nil
}

// ProjectionEntry is a team's current record plus its expected wins over
// the remaining schedule.
type ProjectionEntry struct {
	TeamID        TeamID  `json:"team_id"`
	Name          string  `json:"name"`
	CurrentWins   int     `json:"current_wins"`
	CurrentLosses int     `json:"current_losses"`
	CurrentTies   int     `json:"current_ties"`
	ExpectedWins  float64 `json:"expected_wins"`
	ProjectedWins float64 `json:"projected_wins"`
}

// Project adds expected wins to current wins for every team that has a
// current record or a remaining matchup, sorted by projected wins.
func Project(sim *SeasonSimulation, current ActualRecords, names map[TeamID]string) ([]ProjectionEntry, error) {
	teams := make(map[TeamID]struct{}, len(current))
	for id := range current {
		teams[id] = struct{}{}
	}
	if sim != nil {
		for id := range sim.ExpectedWins {
			teams[id] = struct{}{}
		}
	}

	entries := make([]ProjectionEntry, 0, len(teams))
	for _, id := range sortedTeamIDs(teams) {
		name, err := teamName(names, id)
		if err != nil {
			return nil, err
		}
		rec := current.Get(id)
		var expected float64
		if sim != nil {
			expected = sim.ExpectedWins[id]
		}
		entries = append(entries, ProjectionEntry{
			TeamID:        id,
			Name:          name,
			CurrentWins:   rec.Wins,
			CurrentLosses: rec.Losses,
			CurrentTies:   rec.Ties,
			ExpectedWins:  expected,
			ProjectedWins: float64(rec.Wins) + expected,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ProjectedWins > entries[j].ProjectedWins
	})
	return entries, nil
}
