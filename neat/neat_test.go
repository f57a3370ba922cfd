package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrodon/ctrneat/neat/rng"
)

func TestDefaultOptions_Validates(t *testing.T) {
	opts := DefaultOptions()
	assert.NoError(t, opts.Validate())
}

func TestOptions_Validate_RejectsOutOfRangeProbability(t *testing.T) {
	opts := DefaultOptions()
	opts.MutateWeight = 1.5
	assert.Error(t, opts.Validate())
}

func TestOptions_Validate_RejectsNonPositivePopSize(t *testing.T) {
	opts := DefaultOptions()
	opts.PopSize = 0
	assert.Error(t, opts.Validate())
}

func TestOptions_Validate_RejectsNonPositiveCompatThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.CompatThreshold = 0
	assert.Error(t, opts.Validate())
}

func TestOptions_ProbabilityTable_MatchesFields(t *testing.T) {
	opts := DefaultOptions()
	table := opts.ProbabilityTable()

	require.Equal(t, opts.MutateConnection, table[rng.MutateConnection])
	require.Equal(t, opts.MutateBisection, table[rng.MutateBisection])
	require.Equal(t, opts.KeepDisabled, table[rng.KeepDisabled])
	require.Equal(t, opts.PickLEq, table[rng.PickLEq])
	require.Equal(t, opts.PickLNEq, table[rng.PickLNEq])
}

func TestOptions_DistanceCoefficients_MatchesFields(t *testing.T) {
	opts := DefaultOptions()
	coef := opts.DistanceCoefficients()

	assert.Equal(t, opts.ExcessCoeff, coef.Excess)
	assert.Equal(t, opts.DisjointCoeff, coef.Disjoint)
	assert.Equal(t, opts.MutdiffCoeff, coef.Weight)
}
