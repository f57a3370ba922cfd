package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastrodon/ctrneat/neat"
	"github.com/gastrodon/ctrneat/neat/ctrnn"
	"github.com/gastrodon/ctrneat/neat/rng"
)

type constFitnessScenario struct {
	sensory, action int
	fitness         float64
}

func (s constFitnessScenario) IO() (int, int) { return s.sensory, s.action }

func (s constFitnessScenario) Eval(network *ctrnn.Network, activation ctrnn.ActivationFunc) float64 {
	network.Flush()
	network.Step(2, make([]float64, s.sensory), activation)
	_ = network.Output()
	return s.fitness
}

func TestExecute_noNEATOptions(t *testing.T) {
	exp := Experiment{Id: 0}
	scenario := constFitnessScenario{sensory: 2, action: 1, fitness: 1.0}
	err := exp.Execute(context.Background(), scenario, ctrnn.KernelContinuous, math.Tanh, rng.NewWyRand(1), nil)
	assert.ErrorIs(t, err, neat.ErrNEATOptionsNotFound)
}

func TestExecute_runsGenerations(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.PopSize = 6
	opts.NumRuns = 1
	opts.NumGenerations = 3
	ctx := neat.NewContext(context.Background(), opts)

	exp := Experiment{Id: 0}
	scenario := constFitnessScenario{sensory: 2, action: 1, fitness: 1.0}

	err := exp.Execute(ctx, scenario, ctrnn.KernelContinuous, math.Tanh, rng.NewWyRand(42), nil)
	require.NoError(t, err)
	require.Len(t, exp.Trials, 1)
	assert.Equal(t, opts.NumGenerations, len(exp.Trials[0].Generations))
	assert.False(t, exp.Solved())
}

func TestExecute_hookBreakSolvesTrial(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.PopSize = 6
	opts.NumRuns = 1
	opts.NumGenerations = 5
	ctx := neat.NewContext(context.Background(), opts)

	exp := Experiment{Id: 0}
	scenario := constFitnessScenario{sensory: 2, action: 1, fitness: 1.0}

	hook := HookFunc(func(stats Stats) Flow {
		if stats.GenerationIndex == 1 {
			return Break
		}
		return Continue
	})

	err := exp.Execute(ctx, scenario, ctrnn.KernelContinuous, math.Tanh, rng.NewWyRand(7), nil, hook)
	require.NoError(t, err)
	require.Len(t, exp.Trials, 1)
	assert.Equal(t, 2, len(exp.Trials[0].Generations))
	assert.True(t, exp.Solved())
}
