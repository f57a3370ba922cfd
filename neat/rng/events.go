package rng

import "math"

// Event names one of the coin-flip decisions the genome and reproduction
// packages make while evolving a population.
type Event byte

const (
	// MutateConnection gates Genome.NewConnection.
	MutateConnection Event = iota
	// MutateBisection gates Genome.BisectConnection.
	MutateBisection
	// MutateWeight gates whether a connection's weight is touched at all.
	MutateWeight
	// PerturbWeight is the probability of perturbing (vs replacing) a touched
	// weight. Genome.MutateWeights does not draw it: a touched weight is
	// perturbed whenever NewWeight does not fire.
	PerturbWeight
	// NewWeight gates replacing a touched weight with a fresh sample.
	NewWeight
	// NewDisabled is the probability of creating a fresh connection already
	// disabled. No operator draws it: Genome.NewConnection always adds an
	// enabled gene.
	NewDisabled
	// KeepDisabled gates whether an inherited disabled gene stays disabled.
	KeepDisabled
	// PickLEq gates allele choice for a matching gene under equal fitness.
	PickLEq
	// PickLNEq gates allele choice for a matching gene under unequal fitness.
	PickLNEq
)

// ProbabilityTable maps each Event to its firing probability in [0,1],
// overridable per run via a configuration record (design notes, §9).
type ProbabilityTable map[Event]float64

// DefaultProbabilities returns the percentages named in spec section 4.H:
// MutateConnection 3, MutateBisection 5, MutateWeight 80, PerturbWeight 90,
// NewWeight 10, NewDisabled 1, KeepDisabled 75, PickLEq 50, PickLNEq 50.
func DefaultProbabilities() ProbabilityTable {
	return ProbabilityTable{
		MutateConnection: 0.03,
		MutateBisection:  0.05,
		MutateWeight:     0.80,
		PerturbWeight:    0.90,
		NewWeight:        0.10,
		NewDisabled:      0.01,
		KeepDisabled:     0.75,
		PickLEq:          0.50,
		PickLNEq:         0.50,
	}
}

// threshold converts a [0,1] probability into a uint64 cutoff: an event
// "happens" iff the next raw u64 is below threshold(p).
func threshold(p float64) uint64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return math.MaxUint64
	}
	return uint64(p * float64(math.MaxUint64))
}

// Happens draws one raw value from src and reports whether the named event
// fires, per its probability in table. A pure function of (table, src) with
// no hidden coupling to any particular mutation operator, per the design
// notes' event-probability decoupling guidance.
func Happens(src Source, table ProbabilityTable, evt Event) bool {
	p, ok := table[evt]
	if !ok {
		return false
	}
	return src.NextU64() < threshold(p)
}
