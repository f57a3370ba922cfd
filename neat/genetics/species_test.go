package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberWith(connections []Connection, fitness float64) Member {
	g := &Genome{Sensory: 2, Action: 1, Nodes: []NodeKind{Sensory, Sensory, Action, Static}, Connections: connections}
	return Member{Genome: g, Fitness: fitness}
}

func TestSpeciate_PartitionsByDistance(t *testing.T) {
	near1 := []Connection{conn(0, 1.0)}
	near2 := []Connection{conn(0, 1.01)}
	far := []Connection{conn(0, 1.0), conn(1, 1.0), conn(2, 1.0), conn(3, 1.0), conn(4, 1.0)}

	members := []Member{
		memberWith(near1, 1.0),
		memberWith(near2, 2.0),
		memberWith(far, 3.0),
	}

	species := Speciate(members, nil, DefaultDistanceCoefficients(), 1.0)
	require.Len(t, species, 2)
	assert.Equal(t, 2, species[0].Len())
	assert.Equal(t, 1, species[1].Len())
}

func TestSpeciate_PreservesPriorRepresentativeOrder(t *testing.T) {
	reprA := SpeciesRepresentative{Connections: []Connection{conn(0, 1.0)}}
	reprB := SpeciesRepresentative{Connections: []Connection{conn(5, 1.0), conn(6, 1.0), conn(7, 1.0)}}

	members := []Member{
		memberWith([]Connection{conn(5, 1.0), conn(6, 1.0), conn(7, 1.0)}, 1.0),
		memberWith([]Connection{conn(0, 1.0)}, 2.0),
		memberWith([]Connection{conn(20, 1.0), conn(21, 1.0), conn(22, 1.0), conn(23, 1.0), conn(24, 1.0)}, 3.0),
	}

	species := Speciate(members, []SpeciesRepresentative{reprA, reprB}, DefaultDistanceCoefficients(), 1.0)
	require.Len(t, species, 3)
	assert.Equal(t, reprA, species[0].Repr)
	assert.Equal(t, reprB, species[1].Repr)
}

func TestSpecies_LastIsHighestFitness(t *testing.T) {
	members := []Member{
		memberWith(nil, 3.0),
		memberWith(nil, 1.0),
	}
	species := Speciate(members, nil, DefaultDistanceCoefficients(), 1.0)
	require.Len(t, species, 1)

	last := species[0].Last()
	require.NotNil(t, last)
	assert.Equal(t, 3.0, last.Fitness)
}

func TestSpecies_LastNilWhenEmpty(t *testing.T) {
	sp := &Species{}
	assert.Nil(t, sp.Last())
}

func TestSpecies_FitAdjustedIsMean(t *testing.T) {
	sp := &Species{Members: []Member{{Fitness: 2.0}, {Fitness: 4.0}}}
	assert.Equal(t, 3.0, sp.FitAdjusted())
}

func TestSpecies_FitAdjustedZeroWhenEmpty(t *testing.T) {
	sp := &Species{}
	assert.Equal(t, 0.0, sp.FitAdjusted())
}
