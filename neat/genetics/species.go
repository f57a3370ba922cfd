package genetics

import "sort"

// Member pairs a genome with its raw fitness as evaluated this generation.
type Member struct {
	Genome  *Genome
	Fitness float64
}

// SpeciesRepresentative is an immutable snapshot of one member's connection
// list, retained across generations so a species' identity survives even as
// its membership turns over.
type SpeciesRepresentative struct {
	Connections []Connection
}

// Delta computes compatibility distance from the representative to another
// connection list.
func (s SpeciesRepresentative) Delta(other []Connection, coef DistanceCoefficients) float64 {
	return Distance(s.Connections, other, coef)
}

// Species groups members whose genomes fall within CompatThreshold of the
// representative. Age, AgeOfLastImprovement, and MaxFitnessEver are purely
// additive bookkeeping fields: neither speciation nor reproduction sets or
// reads them, so they keep whatever value the caller gives them.
type Species struct {
	Repr                 SpeciesRepresentative
	Members              []Member
	Age                  int
	AgeOfLastImprovement int
	MaxFitnessEver       float64
}

// Len reports the number of members.
func (s *Species) Len() int { return len(s.Members) }

// Last returns the highest-fitness member once Members has been sorted
// ascending by fitness (as Speciate leaves it).
func (s *Species) Last() *Member {
	if len(s.Members) == 0 {
		return nil
	}
	return &s.Members[len(s.Members)-1]
}

// FitAdjusted returns the mean member fitness: NEAT's explicit-fitness-
// sharing adjustment, dividing by species size so large species do not
// dominate reproduction allocation purely by headcount.
func (s *Species) FitAdjusted() float64 {
	if len(s.Members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range s.Members {
		sum += m.Fitness
	}
	return sum / float64(len(s.Members))
}

// Speciate partitions genomes into species using sequential assignment: a
// genome joins the first existing species whose representative is within
// threshold distance, or else founds a new species with itself as the
// representative. This is order-dependent and deliberately not a global
// clustering pass, matching the reference implementation.
func Speciate(members []Member, priorReprs []SpeciesRepresentative, coef DistanceCoefficients, threshold float64) []*Species {
	species := make([]*Species, 0, len(priorReprs)+1)
	for _, repr := range priorReprs {
		species = append(species, &Species{Repr: repr})
	}

	for _, m := range members {
		placed := false
		for _, sp := range species {
			if sp.Repr.Delta(m.Genome.Connections, coef) < threshold {
				sp.Members = append(sp.Members, m)
				placed = true
				break
			}
		}
		if !placed {
			species = append(species, &Species{
				Repr:    SpeciesRepresentative{Connections: m.Genome.Connections},
				Members: []Member{m},
			})
		}
	}

	for _, sp := range species {
		sort.SliceStable(sp.Members, func(i, j int) bool {
			return sp.Members[i].Fitness < sp.Members[j].Fitness
		})
	}

	return species
}
