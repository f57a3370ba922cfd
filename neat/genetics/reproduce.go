package genetics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/gastrodon/ctrneat/neat/rng"
)

// ErrAllocationFailure is returned when reproduction is asked to draw
// parents from a species group with no members to draw from.
var ErrAllocationFailure = errors.New("genetics: too few members to reproduce")

// selectionEpsilon keeps every member's reproduction weight strictly
// positive even after a fitness shift leaves the worst member at exactly
// zero, so weighted selection never degenerates to an all-zero weight set.
const selectionEpsilon = 1e-6

// weightedRandomSelect draws one member from members with probability
// proportional to fitness, after shifting every fitness non-negative (so a
// population with negative fitnesses still selects sensibly) and adding
// selectionEpsilon so a member at the new minimum still has a nonzero
// chance of selection.
func weightedRandomSelect(members []Member, r *rng.Rand) (Member, bool) {
	if len(members) == 0 {
		return Member{}, false
	}

	minFitness := members[0].Fitness
	for _, m := range members {
		if m.Fitness < minFitness {
			minFitness = m.Fitness
		}
	}
	shift := 0.0
	if minFitness < 0 {
		shift = -minFitness
	}

	weights := make([]float64, len(members))
	var total float64
	for i, m := range members {
		weights[i] = m.Fitness + shift + selectionEpsilon
		total += weights[i]
	}
	if total < 1e-300 {
		return Member{}, false
	}

	threshold := r.Float64() * total
	for i, w := range weights {
		threshold -= w
		if threshold <= 0 {
			return members[i], true
		}
	}
	return members[len(members)-1], true
}

// fitnessOrder compares two fitness values into a FitnessOrder from self's
// perspective.
func fitnessOrder(self, other float64) FitnessOrder {
	switch {
	case self > other:
		return FitnessGreater
	case self < other:
		return FitnessLess
	default:
		return FitnessEqual
	}
}

// reproduceCrossover draws size children from members via weighted parent
// selection and crossover, each independently mutated afterward.
func reproduceCrossover(members []Member, size int, r *rng.Rand, table rng.ProbabilityTable, innos *InnovationRegistry) ([]*Genome, error) {
	if size == 0 {
		return nil, nil
	}
	if len(members) < 2 {
		return nil, errors.Wrapf(ErrAllocationFailure, "wanted to crossover %d from %d members", size, len(members))
	}

	out := make([]*Genome, 0, size)
	for i := 0; i < size; i++ {
		parent1, _ := weightedRandomSelect(members, r)
		parent2, _ := weightedRandomSelect(members, r)
		child := parent1.Genome.ReproduceWith(parent2.Genome, fitnessOrder(parent1.Fitness, parent2.Fitness), r, table)
		child.MaybeMutate(r, table, innos)
		out = append(out, child)
	}
	return out, nil
}

// reproduceCopy draws size children from members via weighted selection,
// cloning and independently mutating each.
func reproduceCopy(members []Member, size int, r *rng.Rand, table rng.ProbabilityTable, innos *InnovationRegistry) ([]*Genome, error) {
	if size == 0 {
		return nil, nil
	}
	if len(members) == 0 {
		return nil, errors.Wrapf(ErrAllocationFailure, "wanted to copy %d from %d members", size, len(members))
	}

	out := make([]*Genome, 0, size)
	for i := 0; i < size; i++ {
		chosen, _ := weightedRandomSelect(members, r)
		child := chosen.Genome.Clone()
		child.MaybeMutate(r, table, innos)
		out = append(out, child)
	}
	return out, nil
}

// Reproduce produces size children from one species' member pool: the
// single fittest member survives unmutated (elitism), and the remainder is
// split between cloned-and-mutated copies and crossover children: a quarter
// of the non-elite slots (rounded down) go to copies and the rest to
// crossover, and the whole remainder goes to copying, not crossover,
// whenever that quarter would be zero or the species has only one member.
func Reproduce(members []Member, size int, r *rng.Rand, table rng.ProbabilityTable, innos *InnovationRegistry) ([]*Genome, error) {
	if size == 0 {
		return nil, nil
	}
	if len(members) == 0 {
		return nil, errors.Wrapf(ErrAllocationFailure, "wanted to produce %d from 0 members", size)
	}

	best := members[0]
	for _, m := range members {
		if m.Fitness > best.Fitness {
			best = m
		}
	}

	pop := make([]*Genome, 0, size)
	pop = append(pop, best.Genome.Clone())
	if size == 1 {
		return pop, nil
	}

	remaining := size - 1
	copyCount := remaining / 4
	if copyCount == 0 || len(members) == 1 {
		copyCount = remaining
	}

	copied, err := reproduceCopy(members, copyCount, r, table, innos)
	if err != nil {
		return nil, err
	}
	pop = append(pop, copied...)

	crossCount := remaining - copyCount
	crossed, err := reproduceCrossover(members, crossCount, r, table, innos)
	if err != nil {
		return nil, err
	}
	pop = append(pop, crossed...)

	return pop, nil
}

// Allocate rounds a target total population across species in proportion to
// each species' adjusted fitness share, returning the per-species slot
// count indexed the same as species.
func Allocate(species []*Species, population int) []int {
	fitAdjusted := make([]float64, len(species))
	var total float64
	for i, sp := range species {
		fitAdjusted[i] = sp.FitAdjusted()
		total += fitAdjusted[i]
	}

	slots := make([]int, len(species))
	if total <= 0 {
		return slots
	}
	popF := float64(population)
	for i, fa := range fitAdjusted {
		slots[i] = int(math.Round(popF * fa / total))
	}
	return slots
}

// PopulationReproduce allocates and reproduces an entire generation: each
// species is first filtered down to members at or above its minFitness
// floor (species that lose every member this way are culled entirely), then
// the survivors share the target population in proportion to adjusted
// fitness, and each species' allocation is reproduced independently. Returns
// the new flat population and the innovation head to carry into the next
// generation.
func PopulationReproduce(species []*Species, minFitness []float64, population, innoHead int, r *rng.Rand, table rng.ProbabilityTable) ([]*Genome, int, error) {
	viable := make([]*Species, 0, len(species))
	for i, sp := range species {
		floor := math.Inf(-1)
		if i < len(minFitness) {
			floor = minFitness[i]
		}
		survivors := make([]Member, 0, len(sp.Members))
		for _, m := range sp.Members {
			if m.Fitness >= floor {
				survivors = append(survivors, m)
			}
		}
		if len(survivors) == 0 {
			continue
		}
		viable = append(viable, &Species{Repr: sp.Repr, Members: survivors})
	}

	slots := Allocate(viable, population)
	innos := NewInnovationRegistry(innoHead)

	out := make([]*Genome, 0, population)
	for i, sp := range viable {
		children, err := Reproduce(sp.Members, slots[i], r, table, innos)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, children...)
	}

	return out, innos.Head(), nil
}
