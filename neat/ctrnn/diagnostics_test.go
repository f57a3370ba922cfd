package ctrnn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gastrodon/ctrneat/neat/genetics"
	"github.com/gastrodon/ctrneat/neat/rng"
)

func TestMaxPathDepth_EmptyGenomeIsZero(t *testing.T) {
	g, _ := genetics.New(2, 1)
	assert.Equal(t, 0, MaxPathDepth(g))
}

func TestMaxPathDepth_SingleHopIsOne(t *testing.T) {
	g, innoHead := genetics.New(2, 1)
	g.Connections = append(g.Connections, genetics.NewConnectionGene(innoHead, 0, 2))
	assert.Equal(t, 1, MaxPathDepth(g))
}

func TestMaxPathDepth_ChainedHopsAccumulate(t *testing.T) {
	g, innos := genetics.New(1, 1)
	registry := genetics.NewInnovationRegistry(innos)
	g.Connections = append(g.Connections, genetics.NewConnectionGene(registry.Path(0, 2), 0, 2))

	// Bisecting once inserts a node between 0 and 2, doubling the hop count
	// of that path from 1 to 2.
	g.BisectConnection(rng.New(rng.NewWyRand(1)), registry)

	assert.Equal(t, 2, MaxPathDepth(g))
}

func TestMaxPathDepth_IgnoresDisabledConnections(t *testing.T) {
	g, innoHead := genetics.New(2, 1)
	g.Connections = append(g.Connections, genetics.NewConnectionGene(innoHead, 0, 2))
	g.Connections[0].Enabled = false

	assert.Equal(t, 0, MaxPathDepth(g))
}
