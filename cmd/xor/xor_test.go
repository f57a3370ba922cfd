package main

import (
	"context"
	"testing"

	"github.com/gastrodon/ctrneat/experiment"
	"github.com/gastrodon/ctrneat/neat"
	"github.com/gastrodon/ctrneat/neat/ctrnn"
	"github.com/gastrodon/ctrneat/neat/rng"
)

// TestXOR_Convergence reproduces the probabilistic convergence property: a
// population of 1000 evolving for up to 500 generations should solve XOR
// (fitness >= 390) in at least one of 10 independent repetitions. Each
// repetition uses a distinct WyRand seed so the ten runs are independent
// draws, not ten replays of the same trajectory.
func TestXOR_Convergence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping probabilistic convergence run in short mode")
	}

	opts := neat.DefaultOptions()
	opts.PopSize = 1000
	opts.NumGenerations = 500
	opts.NumRuns = 1

	for repetition := uint64(0); repetition < 10; repetition++ {
		ctx := neat.NewContext(context.Background(), opts)
		exp := experiment.Experiment{Id: int(repetition), MaxFitnessScore: 400.0}

		target := experiment.HookFunc(func(stats experiment.Stats) experiment.Flow {
			if stats.BestFound && stats.Best.Fitness >= solvedFitness {
				return experiment.Break
			}
			return experiment.Continue
		})

		err := exp.Execute(ctx, xorScenario{}, ctrnn.KernelContinuous, relu, rng.NewWyRand(1000+repetition), nil, target)
		if err != nil {
			t.Fatalf("repetition %d: unexpected error: %s", repetition, err)
		}

		if m, _, found := exp.BestMember(true); found && m.Fitness >= solvedFitness {
			return
		}
	}

	t.Fatalf("no repetition reached fitness >= %.1f within %d generations", solvedFitness, 500)
}
