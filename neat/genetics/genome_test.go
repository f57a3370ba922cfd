package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NodeLayout(t *testing.T) {
	g, innoHead := New(3, 2)
	require.Len(t, g.Nodes, 6)

	start, end := g.SensoryRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	start, end = g.ActionRange()
	assert.Equal(t, 3, start)
	assert.Equal(t, 5, end)

	assert.Equal(t, 5, g.StaticIndex())
	assert.Equal(t, Static, g.Nodes[g.StaticIndex()])
	assert.Empty(t, g.Connections)

	// (sensory+1)*action = (3+1)*2 = 8
	assert.Equal(t, 8, innoHead)
}

func TestNew_NodeKindsInOrder(t *testing.T) {
	g, _ := New(2, 1)
	assert.Equal(t, []NodeKind{Sensory, Sensory, Action, Static}, g.Nodes)
}

func TestGenome_Complexity(t *testing.T) {
	g, _ := New(2, 1)
	// 4 nodes, 0 enabled connections.
	assert.Equal(t, 4, g.Complexity())

	g.Connections = append(g.Connections,
		NewConnectionGene(0, 0, 2),
		NewConnectionGene(1, 1, 2),
	)
	assert.Equal(t, 6, g.Complexity())

	g.Connections[0].Enabled = false
	assert.Equal(t, 5, g.Complexity())
}

func TestGenome_Clone_IsIndependent(t *testing.T) {
	g, _ := New(2, 1)
	g.Connections = append(g.Connections, NewConnectionGene(0, 0, 2))

	clone := g.Clone()
	clone.Connections[0].Weight = 99.0
	clone.Nodes = append(clone.Nodes, Internal)

	assert.NotEqual(t, g.Connections[0].Weight, clone.Connections[0].Weight)
	assert.NotEqual(t, len(g.Nodes), len(clone.Nodes))
}
