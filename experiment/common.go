// Package experiment runs evolutionary trials against a Scenario, collecting
// per-generation statistics for later analysis and export.
package experiment

import (
	"time"

	"github.com/gastrodon/ctrneat/neat/ctrnn"
	"github.com/gastrodon/ctrneat/neat/genetics"
)

// EmptyDuration is returned when an average duration cannot be estimated
// (empty trials or generations).
const EmptyDuration = time.Duration(-1)

// Scenario is the external collaborator a Trial evaluates every genome
// against: it names the genome's input/output arity and scores one
// compiled network's behavior.
type Scenario interface {
	// IO reports the sensory and action node counts every genome in this
	// scenario's population must have.
	IO() (sensory, action int)
	// Eval steps network (calling Flush/Step/Output as many times as the
	// scenario needs) and returns its fitness score.
	Eval(network *ctrnn.Network, activation ctrnn.ActivationFunc) float64
}

// Flow is the two-valued control a Hook returns to tell the driver whether
// to keep running.
type Flow int

const (
	// Continue lets the evolutionary loop proceed to the next generation.
	Continue Flow = iota
	// Break halts the run after the current generation.
	Break
)

// Stats is the read-only view of one completed generation passed to every
// Hook.
type Stats struct {
	GenerationIndex int
	Species         []*genetics.Species
	Best            genetics.Member
	BestFound       bool
}

// Hook observes each completed generation and may halt the run. Hooks run
// serially in registration order; the first Break halts the run.
type Hook interface {
	Observe(stats Stats) Flow
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(Stats) Flow

// Observe calls f.
func (f HookFunc) Observe(stats Stats) Flow {
	return f(stats)
}

// TrialRunObserver is notified about a trial's lifecycle, independent of
// the per-generation Hook protocol -- useful for progress logging or
// periodic persistence that doesn't need to influence control flow.
type TrialRunObserver interface {
	TrialRunStarted(trial *Trial)
	TrialRunFinished(trial *Trial)
	GenerationEvaluated(trial *Trial, generation *Generation)
}
