package genetics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrodon/ctrneat/neat/rng"
)

func noopTable() rng.ProbabilityTable {
	return rng.ProbabilityTable{
		rng.MutateConnection: 0,
		rng.MutateBisection:  0,
		rng.MutateWeight:     0,
		rng.PickLEq:          0.5,
		rng.PickLNEq:         0.5,
		rng.KeepDisabled:     0,
	}
}

func TestAllocate_ProportionalToFitAdjusted(t *testing.T) {
	a := &Species{Members: []Member{{Fitness: 8.0}}}
	b := &Species{Members: []Member{{Fitness: 2.0}}}

	slots := Allocate([]*Species{a, b}, 30)
	require.Len(t, slots, 2)
	assert.Equal(t, 24, slots[0])
	assert.Equal(t, 6, slots[1])
}

func TestAllocate_ZeroTotalFitnessGivesZeroSlots(t *testing.T) {
	a := &Species{Members: []Member{{Fitness: 0}}}
	slots := Allocate([]*Species{a}, 10)
	assert.Equal(t, []int{0}, slots)
}

func TestReproduce_ElitismKeepsBestUnmutated(t *testing.T) {
	g, innoHead := New(2, 1)
	g.Connections = append(g.Connections, NewConnectionGene(innoHead, 0, 2))
	best := Member{Genome: g, Fitness: 100.0}
	worst := Member{Genome: g.Clone(), Fitness: 1.0}

	r := rng.New(rng.NewWyRand(1))
	innos := NewInnovationRegistry(innoHead + 1)

	pop, err := Reproduce([]Member{worst, best}, 3, r, noopTable(), innos)
	require.NoError(t, err)
	require.Len(t, pop, 3)

	assert.Equal(t, best.Genome.Connections, pop[0].Connections)
}

func TestReproduce_SingleMemberCopiesAllNonElite(t *testing.T) {
	g, innoHead := New(2, 1)
	member := Member{Genome: g, Fitness: 1.0}
	r := rng.New(rng.NewWyRand(1))
	innos := NewInnovationRegistry(innoHead)

	pop, err := Reproduce([]Member{member}, 4, r, noopTable(), innos)
	require.NoError(t, err)
	assert.Len(t, pop, 4)
}

func TestReproduce_ZeroMembersErrors(t *testing.T) {
	r := rng.New(rng.NewWyRand(1))
	innos := NewInnovationRegistry(0)
	_, err := Reproduce(nil, 3, r, noopTable(), innos)
	assert.ErrorIs(t, err, ErrAllocationFailure)
}

func TestPopulationReproduce_FiltersBelowMinFitness(t *testing.T) {
	g, innoHead := New(2, 1)
	species := []*Species{
		{Members: []Member{{Genome: g, Fitness: 1.0}, {Genome: g.Clone(), Fitness: 5.0}}},
	}
	minFitness := []float64{3.0}

	r := rng.New(rng.NewWyRand(1))
	genomes, newHead, err := PopulationReproduce(species, minFitness, 4, innoHead, r, noopTable())
	require.NoError(t, err)
	assert.Len(t, genomes, 4)
	assert.GreaterOrEqual(t, newHead, innoHead)
}

func TestPopulationReproduce_CullsSpeciesWithNoSurvivors(t *testing.T) {
	g, innoHead := New(2, 1)
	species := []*Species{
		{Members: []Member{{Genome: g, Fitness: 1.0}}},
	}
	minFitness := []float64{math.Inf(1)}

	r := rng.New(rng.NewWyRand(1))
	genomes, _, err := PopulationReproduce(species, minFitness, 10, innoHead, r, noopTable())
	require.NoError(t, err)
	assert.Empty(t, genomes)
}

func TestPopulationReproduce_MissingMinFitnessDefaultsToNegInf(t *testing.T) {
	g, innoHead := New(2, 1)
	species := []*Species{
		{Members: []Member{{Genome: g, Fitness: 1.0}}},
	}

	r := rng.New(rng.NewWyRand(1))
	genomes, _, err := PopulationReproduce(species, nil, 5, innoHead, r, noopTable())
	require.NoError(t, err)
	assert.Len(t, genomes, 5)
}
