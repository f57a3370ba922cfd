package ctrnn

import (
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/gastrodon/ctrneat/neat/genetics"
)

// MaxPathDepth reports the longest shortest-path hop count between any two
// nodes reachable through g's enabled connections, treating the genome as a
// directed graph. Useful as a diagnostic for how "deep" a topology has
// grown; has no bearing on network compilation or stepping.
func MaxPathDepth(g *genetics.Genome) int {
	graph := simple.NewDirectedGraph()
	for i := range g.Nodes {
		graph.AddNode(simple.Node(i))
	}
	for _, c := range g.Connections {
		if !c.Enabled {
			continue
		}
		graph.SetEdge(simple.Edge{F: simple.Node(c.From), T: simple.Node(c.To)})
	}

	shortest := path.DijkstraAllPaths(graph)

	maxDepth := 0
	for i := range g.Nodes {
		for j := range g.Nodes {
			if i == j {
				continue
			}
			_, weight := shortest.Between(int64(i), int64(j))
			if weight > 0 && int(weight) > maxDepth {
				maxDepth = int(weight)
			}
		}
	}
	return maxDepth
}
