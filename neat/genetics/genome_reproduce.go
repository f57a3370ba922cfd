package genetics

import (
	"github.com/gastrodon/ctrneat/neat/rng"
)

// FitnessOrder describes how one parent's fitness compares to another's,
// deciding how disjoint/excess genes are inherited during crossover.
type FitnessOrder int

const (
	FitnessLess FitnessOrder = iota
	FitnessEqual
	FitnessGreater
)

// includeDisjointOrExcess decides whether a disjoint or excess gene present
// only in self (fromSelf true) or only in other (fromSelf false) survives
// into the child: the fitter parent's genes always survive and the less-fit
// parent's are always dropped, but under tied fitness each such gene is an
// independent coin flip (spec 4.B step 3 / testable property 8.4: each
// disjoint/excess gene present with probability ~0.5, not unconditionally
// from both parents).
func includeDisjointOrExcess(selfFit FitnessOrder, fromSelf bool, r *rng.Rand) bool {
	switch selfFit {
	case FitnessGreater:
		return fromSelf
	case FitnessLess:
		return !fromSelf
	default:
		return r.Bool()
	}
}

// crossoverConnections aligns self and other by innovation id and produces
// a child gene list: matching genes are inherited from either parent at
// random (PickLEq is the chance of taking self's allele when parents are
// equally fit, PickLNEq the chance of taking the fitter parent's allele
// otherwise, both defaulting to a coin flip), while disjoint and excess genes are inherited
// from the fitter parent only -- or independently, gene by gene, with
// probability 0.5, when fitness is tied. A gene disabled in either parent
// has a KeepDisabled chance of staying disabled in the child.
func crossoverConnections(self, other []Connection, selfFit FitnessOrder, r *rng.Rand, table rng.ProbabilityTable) []Connection {
	as := sortedByInno(self)
	bs := sortedByInno(other)

	child := make([]Connection, 0, len(as)+len(bs))

	pickEvent := rng.PickLNEq
	if selfFit == FitnessEqual {
		pickEvent = rng.PickLEq
	}

	inherit := func(c Connection, disabledElsewhere bool) Connection {
		if (!c.Enabled || disabledElsewhere) && !rng.Happens(r.Source, table, rng.KeepDisabled) {
			c.Enabled = true
		} else if !c.Enabled || disabledElsewhere {
			c.Enabled = false
		}
		return c
	}

	i, j := 0, 0
	for i < len(as) && j < len(bs) {
		switch {
		case as[i].Inno == bs[j].Inno:
			pickSelf := rng.Happens(r.Source, table, pickEvent)
			if selfFit == FitnessLess {
				pickSelf = !pickSelf
			}
			var chosen Connection
			if pickSelf {
				chosen = as[i]
			} else {
				chosen = bs[j]
			}
			child = append(child, inherit(chosen, !as[i].Enabled || !bs[j].Enabled))
			i++
			j++
		case as[i].Inno < bs[j].Inno:
			if includeDisjointOrExcess(selfFit, true, r) {
				child = append(child, as[i])
			}
			i++
		default:
			if includeDisjointOrExcess(selfFit, false, r) {
				child = append(child, bs[j])
			}
			j++
		}
	}
	for ; i < len(as); i++ {
		if includeDisjointOrExcess(selfFit, true, r) {
			child = append(child, as[i])
		}
	}
	for ; j < len(bs); j++ {
		if includeDisjointOrExcess(selfFit, false, r) {
			child = append(child, bs[j])
		}
	}

	return child
}

// ReproduceWith crosses g with other (g's fitness compared to other's is
// selfFit) and returns a fresh child genome. The child's node list is
// rebuilt to cover every node index referenced by the inherited connections,
// growing past sensory+action+1 with Internal nodes as needed.
func (g *Genome) ReproduceWith(other *Genome, selfFit FitnessOrder, r *rng.Rand, table rng.ProbabilityTable) *Genome {
	connections := crossoverConnections(g.Connections, other.Connections, selfFit, r, table)

	maxNode := g.Sensory + g.Action
	for _, c := range connections {
		if c.From > maxNode {
			maxNode = c.From
		}
		if c.To > maxNode {
			maxNode = c.To
		}
	}

	nodes := make([]NodeKind, 0, maxNode+1)
	for i := 0; i < g.Sensory; i++ {
		nodes = append(nodes, Sensory)
	}
	for i := 0; i < g.Action; i++ {
		nodes = append(nodes, Action)
	}
	nodes = append(nodes, Static)
	for i := g.Sensory + g.Action + 1; i <= maxNode; i++ {
		nodes = append(nodes, Internal)
	}

	return &Genome{
		Sensory:     g.Sensory,
		Action:      g.Action,
		Nodes:       nodes,
		Connections: connections,
	}
}
