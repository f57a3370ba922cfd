// Command xor runs the two-input exclusive-or scenario against the
// evolutionary engine: a minimal, structurally non-separable problem used to
// check that the engine actually grows the hidden topology XOR requires
// rather than just tuning weights.
package main

import (
	"math"

	"github.com/gastrodon/ctrneat/neat/ctrnn"
)

// prec is the number of CTRNN sub-steps integrated per XOR input pattern.
const prec = 5

// patternPoints scales each pattern's contribution so a perfect solve nets
// fitness 400 (100 points per pattern), matching the fitness formula named
// by the evolutionary target this scenario is built around.
const patternPoints = 100.0

var xorPatterns = [4][3]float64{
	{0, 0, 0},
	{0, 1, 1},
	{1, 0, 1},
	{1, 1, 0},
}

// xorScenario evaluates a network against all four XOR input/target pairs,
// flushing state between patterns so an XOR solver can't cheat by
// memorizing presentation order through recurrent state.
type xorScenario struct{}

func (xorScenario) IO() (sensory, action int) { return 2, 1 }

func (xorScenario) Eval(network *ctrnn.Network, activation ctrnn.ActivationFunc) float64 {
	fitness := 400.0
	for _, pattern := range xorPatterns {
		network.Flush()
		network.Step(prec, []float64{pattern[0], pattern[1]}, activation)
		diff := pattern[2] - network.Output()[0]
		fitness -= patternPoints * diff * diff
	}
	return fitness
}

// relu is the rectified-linear nonlinearity named by the XOR convergence
// test, passed to Execute directly; the neat/math registry's ReLUActivation
// computes the same values but is not used here.
func relu(x float64) float64 {
	return math.Max(0, x)
}
