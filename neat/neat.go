// Package neat holds the tunable configuration, logging, and context
// plumbing shared across the genome, speciation, and reproduction packages.
package neat

import (
	"fmt"

	"github.com/gastrodon/ctrneat/neat/genetics"
	"github.com/gastrodon/ctrneat/neat/math"
	"github.com/gastrodon/ctrneat/neat/rng"
)

// EpochExecutorType names the strategy used to advance one generation.
type EpochExecutorType string

const (
	// EpochExecutorSequential evaluates and reproduces one species at a time.
	EpochExecutorSequential EpochExecutorType = "sequential"
	// EpochExecutorParallel evaluates genomes across worker goroutines.
	EpochExecutorParallel EpochExecutorType = "parallel"
)

// GenomeCompatibilityMethod selects the algorithm used to compute the
// distance between two genomes' connection lists.
type GenomeCompatibilityMethod string

const (
	// GenomeCompatibilityLinear walks both connection lists once, defensively
	// sorted by innovation number.
	GenomeCompatibilityLinear GenomeCompatibilityMethod = "linear"
	// GenomeCompatibilityFast is accepted in config; genetics.Distance treats
	// it the same as linear and still sorts both lists.
	GenomeCompatibilityFast GenomeCompatibilityMethod = "fast"
)

// Options holds every tunable probability, coefficient, and run parameter
// named by the evolutionary engine. It plays the same role as the legacy
// unexported Neat struct did, but every field is exported so it can be
// decoded directly from YAML or the plain-text .neat format.
type Options struct {
	// MutateConnection is the probability of adding a brand new connection
	// during a non-structural mutation pass.
	MutateConnection float64 `yaml:"mutate_connection_prob"`
	// MutateBisection is the probability of splitting an existing
	// connection with a new internal node.
	MutateBisection float64 `yaml:"mutate_bisection_prob"`
	// MutateWeight is the probability that any single connection's weight
	// is touched at all during a mutation pass.
	MutateWeight float64 `yaml:"mutate_weight_prob"`
	// PerturbWeight is, conditioned on MutateWeight firing, the probability
	// the weight is perturbed rather than replaced outright. It is carried
	// into the probability table but Genome.MutateWeights does not draw it:
	// a touched weight is perturbed whenever NewWeight does not fire.
	PerturbWeight float64 `yaml:"perturb_weight_prob"`
	// NewWeight is the complement of PerturbWeight: replace with a fresh
	// uniform sample instead of nudging the existing value.
	NewWeight float64 `yaml:"new_weight_prob"`
	// NewDisabled is the probability a freshly added connection is created
	// already disabled. It is carried into the probability table but no
	// operator draws it: Genome.NewConnection always adds an enabled gene.
	NewDisabled float64 `yaml:"new_disabled_prob"`
	// KeepDisabled is the probability a matching gene inherited from a
	// parent where it was disabled in either parent stays disabled in the
	// child.
	KeepDisabled float64 `yaml:"keep_disabled_prob"`
	// PickLEq is the probability of picking either parent's allele for a
	// matching gene when both parents have equal fitness.
	PickLEq float64 `yaml:"pick_l_eq_prob"`
	// PickLNEq is the probability of picking the fitter parent's allele for
	// a matching gene when fitnesses differ.
	PickLNEq float64 `yaml:"pick_l_ne_prob"`

	// DisjointCoeff (c2) weights disjoint genes in the compatibility
	// distance formula.
	DisjointCoeff float64 `yaml:"disjoint_coeff"`
	// ExcessCoeff (c1) weights excess genes in the compatibility distance
	// formula.
	ExcessCoeff float64 `yaml:"excess_coeff"`
	// MutdiffCoeff (c3) weights mean parameter difference in the
	// compatibility distance formula.
	MutdiffCoeff float64 `yaml:"mutdiff_coeff"`
	// CompatThreshold (delta_t) is the distance under which two genomes are
	// considered the same species.
	CompatThreshold float64 `yaml:"compat_threshold"`

	// SurvivalThresh is retained for config-format compatibility with the
	// teacher's .neat files; this engine's allocator instead culls a
	// species outright when its best fitness falls under the
	// previous-generation threshold (spec section 4.F), so this value is
	// read but unused by the allocator itself.
	SurvivalThresh float64 `yaml:"survival_thresh"`

	// PopSize is the target population size held constant across
	// generations.
	PopSize int `yaml:"pop_size"`
	// NewLinkTries is retained for config-format compatibility and is not
	// read by Genome.NewConnection, which keeps drawing source nodes until it
	// finds an open pair or every source node is saturated.
	NewLinkTries int `yaml:"newlink_tries"`
	// NumRuns is the number of independent trials an Experiment executes.
	NumRuns int `yaml:"num_runs"`
	// NumGenerations bounds a trial's generation count (the Generation
	// evolution-target stop condition).
	NumGenerations int `yaml:"num_generations"`
	// PrintEvery controls how often hooks that print progress should fire;
	// purely advisory, not enforced by the driver itself.
	PrintEvery int `yaml:"print_every"`

	// EpochExecutorType names sequential or parallel per-generation
	// evaluation. It is read from config but experiment.Execute does not
	// consult it and always evaluates sequentially.
	EpochExecutorType EpochExecutorType `yaml:"epoch_executor"`
	// GenCompatMethod names the compatibility distance algorithm. It is read
	// from config but genetics.Distance does not consult it and always sorts
	// both lists by innovation number.
	GenCompatMethod GenomeCompatibilityMethod `yaml:"genome_compat_method"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	// NodeActivatorsWithProbs lists "<name> <probability>" pairs read
	// verbatim from config; resolved into NodeActivators/NodeActivatorsProb
	// by initNodeActivators.
	NodeActivatorsWithProbs []string `yaml:"node_activators"`
	// NodeActivators is the resolved activation-type pool a new node may be
	// randomly assigned from.
	NodeActivators []math.NodeActivationType `yaml:"-"`
	// NodeActivatorsProb is the matching probability weight per entry of
	// NodeActivators.
	NodeActivatorsProb []float64 `yaml:"-"`
}

// DefaultOptions returns the event-probability defaults named in spec
// section 4.H and the compatibility-distance defaults of section 4.C.
func DefaultOptions() *Options {
	return &Options{
		MutateConnection: 0.03,
		MutateBisection:  0.05,
		MutateWeight:     0.80,
		PerturbWeight:    0.90,
		NewWeight:        0.10,
		NewDisabled:      0.01,
		KeepDisabled:     0.75,
		PickLEq:          0.50,
		PickLNEq:         0.50,

		DisjointCoeff: 1.0,
		ExcessCoeff:   1.0,
		MutdiffCoeff:  0.4,

		CompatThreshold: 4.0,
		SurvivalThresh:  0.2,

		PopSize:        150,
		NewLinkTries:   20,
		NumRuns:        1,
		NumGenerations: 100,
		PrintEvery:     10,

		EpochExecutorType: EpochExecutorSequential,
		GenCompatMethod:   GenomeCompatibilityLinear,
		LogLevel:          "info",
	}
}

// Validate checks that every probability lies in [0,1] and that PopSize and
// CompatThreshold are positive, returning a descriptive error on the first
// violation found. The distance coefficients are not checked.
func (o *Options) Validate() error {
	probs := map[string]float64{
		"mutate_connection_prob": o.MutateConnection,
		"mutate_bisection_prob":  o.MutateBisection,
		"mutate_weight_prob":     o.MutateWeight,
		"perturb_weight_prob":    o.PerturbWeight,
		"new_weight_prob":        o.NewWeight,
		"new_disabled_prob":      o.NewDisabled,
		"keep_disabled_prob":     o.KeepDisabled,
		"pick_l_eq_prob":         o.PickLEq,
		"pick_l_ne_prob":         o.PickLNEq,
	}
	for name, p := range probs {
		if p < 0.0 || p > 1.0 {
			return fmt.Errorf("option %s must be within [0,1], got %f", name, p)
		}
	}
	if o.PopSize <= 0 {
		return fmt.Errorf("pop_size must be positive, got %d", o.PopSize)
	}
	if o.CompatThreshold <= 0 {
		return fmt.Errorf("compat_threshold must be positive, got %f", o.CompatThreshold)
	}
	return nil
}

// ProbabilityTable translates the named probability fields into the
// rng.ProbabilityTable mutation and reproduction code actually consumes,
// keeping the config surface (named fields, YAML tags) decoupled from the
// event-probability abstraction.
func (o *Options) ProbabilityTable() rng.ProbabilityTable {
	return rng.ProbabilityTable{
		rng.MutateConnection: o.MutateConnection,
		rng.MutateBisection:  o.MutateBisection,
		rng.MutateWeight:     o.MutateWeight,
		rng.PerturbWeight:    o.PerturbWeight,
		rng.NewWeight:        o.NewWeight,
		rng.NewDisabled:      o.NewDisabled,
		rng.KeepDisabled:     o.KeepDisabled,
		rng.PickLEq:          o.PickLEq,
		rng.PickLNEq:         o.PickLNEq,
	}
}

// DistanceCoefficients translates the named coefficient fields into the
// genetics package's DistanceCoefficients value.
func (o *Options) DistanceCoefficients() genetics.DistanceCoefficients {
	return genetics.DistanceCoefficients{
		Excess:   o.ExcessCoeff,
		Disjoint: o.DisjointCoeff,
		Weight:   o.MutdiffCoeff,
	}
}
