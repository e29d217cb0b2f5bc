package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsistency_KnownValues(t *testing.T) {
	history := map[TeamID][]float64{
		"alice": {100, 100, 100},
		"bob":   {50, 100, 150},
	}

	entries, err := Consistency(history, sampleNames)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, TeamID("alice"), entries[0].TeamID)
	assert.True(t, entries[0].Defined)
	assert.InDelta(t, 0.0, entries[0].Consistency, 1e-12)
	assert.Equal(t, 3, entries[0].Observations)

	assert.Equal(t, TeamID("bob"), entries[1].TeamID)
	assert.InDelta(t, 50.0, entries[1].StdDev, 1e-9)
	assert.InDelta(t, 100.0, entries[1].Mean, 1e-9)
	assert.InDelta(t, 0.5, entries[1].Consistency, 1e-9)
}

func TestConsistency_SingleObservationIsUndefined(t *testing.T) {
	history := map[TeamID][]float64{
		"alice": {120},
		"bob":   {90, 110},
		"carol": {},
	}

	entries, err := Consistency(history, sampleNames)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Defined entries rank first even though the sentinel is 0.
	assert.Equal(t, TeamID("bob"), entries[0].TeamID)
	assert.True(t, entries[0].Defined)

	for _, e := range entries[1:] {
		assert.False(t, e.Defined, "team %s", e.TeamID)
		assert.Equal(t, 0.0, e.Consistency)
	}
	assert.Equal(t, 1, entries[1].Observations)
	assert.Equal(t, 120.0, entries[1].Mean)
	assert.Equal(t, 0, entries[2].Observations)
}

func TestConsistency_ZeroMean(t *testing.T) {
	history := map[TeamID][]float64{"alice": {0, 0}}

	_, err := Consistency(history, sampleNames)
	assert.ErrorIs(t, err, ErrDegenerateStatistic)
}

func TestConsistency_MissingName(t *testing.T) {
	_, err := Consistency(map[TeamID][]float64{"ghost": {1, 2}}, sampleNames)
	assert.ErrorIs(t, err, ErrMissingTeamData)
}

func TestConsistency_NeverNegative(t *testing.T) {
	entries, err := Consistency(Histories(sampleWeeks()), sampleNames)
	require.NoError(t, err)
	for i, e := range entries {
		assert.GreaterOrEqual(t, e.Consistency, 0.0)
		if i > 0 && entries[i-1].Defined && e.Defined {
			assert.LessOrEqual(t, entries[i-1].Consistency, e.Consistency)
		}
	}
}

func TestConsistency_RejectsInvalidScores(t *testing.T) {
	tests := map[string][]float64{
		"negative": {-10, -30},
		"NaN":      {100, math.NaN()},
		"infinite": {100, math.Inf(1)},
		"single":   {-5},
	}
	for name, points := range tests {
		t.Run(name, func(t *testing.T) {
			entries, err := Consistency(map[TeamID][]float64{"alice": points}, sampleNames)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, entries)
		})
	}
}
