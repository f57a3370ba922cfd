package genetics

import "github.com/gastrodon/ctrneat/neat/rng"

// weightJitter bounds the uniform sample used both for a freshly-drawn
// weight and for the magnitude of a perturbation before it is scaled by
// perturbFactor.
const weightJitter = 3.0

// perturbFactor scales a fresh [-weightJitter, weightJitter] draw down to a
// small nudge when perturbing (rather than replacing) a weight.
const perturbFactor = 0.1

// openPath searches for a (from, to) node pair that is legal to wire a new
// connection gene between: from must not be an Action node, to must not be
// Sensory or Static, and the pair must not already exist among g's
// connections (enabled or disabled). Nodes that have no legal "to" left are
// marked saturated and excluded from further "from" draws. Returns false if
// every node is saturated.
func (g *Genome) openPath(r *rng.Rand) (from, to int, ok bool) {
	saturated := make(map[int]bool, len(g.Nodes))

	for {
		candidates := make([]int, 0, len(g.Nodes))
		for i, n := range g.Nodes {
			if n != Action && !saturated[i] {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return 0, 0, false
		}
		from = candidates[r.Intn(len(candidates))]

		exclude := make(map[int]bool, len(g.Connections))
		for _, c := range g.Connections {
			if c.From == from {
				exclude[c.To] = true
			}
		}

		toCandidates := make([]int, 0, len(g.Nodes))
		for i, n := range g.Nodes {
			if n != Static && n != Sensory && !exclude[i] {
				toCandidates = append(toCandidates, i)
			}
		}
		if len(toCandidates) > 0 {
			to = toCandidates[r.Intn(len(toCandidates))]
			return from, to, true
		}

		saturated[from] = true
	}
}

// NewConnection attempts to grow a fresh connection gene between two
// previously unconnected nodes, assigning it an innovation id via innos.
// A no-op if every legal pair is already wired.
func (g *Genome) NewConnection(r *rng.Rand, innos *InnovationRegistry) {
	from, to, ok := g.openPath(r)
	if !ok {
		return
	}
	g.Connections = append(g.Connections, NewConnectionGene(innos.Path(from, to), from, to))
}

// BisectConnection splits a randomly chosen enabled connection in two,
// inserting a fresh Internal node between them: the first half carries
// identity weight 1.0, the second half inherits the original weight. Panics
// if g has no enabled connection to bisect.
func (g *Genome) BisectConnection(r *rng.Rand, innos *InnovationRegistry) {
	enabled := make([]int, 0, len(g.Connections))
	for i, c := range g.Connections {
		if c.Enabled {
			enabled = append(enabled, i)
		}
	}
	if len(enabled) == 0 {
		panic("genetics: no connections available to bisect")
	}

	idx := enabled[r.Intn(len(enabled))]
	original := g.Connections[idx]
	g.Connections[idx].Enabled = false

	center := len(g.Nodes)
	g.Nodes = append(g.Nodes, Internal)

	g.Connections = append(g.Connections,
		NewConnectionGene(innos.Path(original.From, center), original.From, center),
	)
	tail := NewConnectionGene(innos.Path(center, original.To), center, original.To)
	tail.Weight = original.Weight
	tail.Bias = original.Bias
	tail.Timescale = original.Timescale
	g.Connections = append(g.Connections, tail)
}

// MutateWeights walks every connection gene and, per the MutateWeight event
// probability, either replaces its weight with a fresh uniform sample (per
// NewWeight) or nudges it by a small scaled perturbation (the complementary
// PerturbWeight outcome).
func (g *Genome) MutateWeights(r *rng.Rand, table rng.ProbabilityTable) {
	for i := range g.Connections {
		if !rng.Happens(r.Source, table, rng.MutateWeight) {
			continue
		}
		sample := r.UniformRange(-weightJitter, weightJitter)
		if rng.Happens(r.Source, table, rng.NewWeight) {
			g.Connections[i].Weight = sample
		} else {
			g.Connections[i].Weight += sample * perturbFactor
		}
	}
}

// MaybeMutate performs zero or more structural/parametric mutations on g,
// each independently gated by its event probability: weight mutation always
// runs, while NewConnection and BisectConnection additionally each have their
// own chance to fire.
func (g *Genome) MaybeMutate(r *rng.Rand, table rng.ProbabilityTable, innos *InnovationRegistry) {
	g.MutateWeights(r, table)

	if rng.Happens(r.Source, table, rng.MutateConnection) {
		g.NewConnection(r, innos)
	}
	if rng.Happens(r.Source, table, rng.MutateBisection) && len(g.Connections) > 0 {
		g.BisectConnection(r, innos)
	}
}
