package genetics

import "sort"

// DistanceCoefficients weights the three terms of compatibility distance:
// excess genes, disjoint genes, and average matching-gene parameter
// difference. Defaults per spec: c1=c2=1.0, c3=0.4.
type DistanceCoefficients struct {
	Excess   float64
	Disjoint float64
	Weight   float64
}

// DefaultDistanceCoefficients returns the standard NEAT weighting.
func DefaultDistanceCoefficients() DistanceCoefficients {
	return DistanceCoefficients{Excess: 1.0, Disjoint: 1.0, Weight: 0.4}
}

// sortedByInno returns a copy of cs sorted by ascending innovation id.
func sortedByInno(cs []Connection) []Connection {
	out := make([]Connection, len(cs))
	copy(out, cs)
	sort.Slice(out, func(i, j int) bool { return out[i].Inno < out[j].Inno })
	return out
}

// Distance computes compatibility distance between two connection gene sets
// by merging them in innovation order: genes whose ids fall within both
// sets' shared range but without a match are disjoint, genes beyond the
// other set's maximum id are excess, and matching genes contribute their
// ParamDiff to the weight term's running total.
//
//	δ = (c1*E + c2*D)/N + c3*W̄
//
// N is the length of the longer gene list, or 1 if both lists have fewer
// than 20 genes (avoiding over-penalizing small genomes).
func Distance(a, b []Connection, coef DistanceCoefficients) float64 {
	as := sortedByInno(a)
	bs := sortedByInno(b)

	var excess, disjoint int
	var weightDiff float64
	var matching int

	i, j := 0, 0
	aMax := -1
	if len(as) > 0 {
		aMax = as[len(as)-1].Inno
	}
	bMax := -1
	if len(bs) > 0 {
		bMax = bs[len(bs)-1].Inno
	}

	for i < len(as) && j < len(bs) {
		switch {
		case as[i].Inno == bs[j].Inno:
			weightDiff += as[i].ParamDiff(bs[j])
			matching++
			i++
			j++
		case as[i].Inno < bs[j].Inno:
			if as[i].Inno > bMax {
				excess++
			} else {
				disjoint++
			}
			i++
		default:
			if bs[j].Inno > aMax {
				excess++
			} else {
				disjoint++
			}
			j++
		}
	}
	for ; i < len(as); i++ {
		excess++
	}
	for ; j < len(bs); j++ {
		excess++
	}

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	if n < 20 {
		n = 1
	}

	var avgWeight float64
	if matching > 0 {
		avgWeight = weightDiff / float64(matching)
	}

	return (coef.Excess*float64(excess)+coef.Disjoint*float64(disjoint))/float64(n) + coef.Weight*avgWeight
}
