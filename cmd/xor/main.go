package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/gastrodon/ctrneat/experiment"
	"github.com/gastrodon/ctrneat/neat"
	"github.com/gastrodon/ctrneat/neat/ctrnn"
	"github.com/gastrodon/ctrneat/neat/rng"
)

// solvedFitness is the target fitness the XOR convergence test asks for.
const solvedFitness = 390.0

func main() {
	configPath := flag.String("config", "./data/xor.neat.yml", "The NEAT options configuration file.")
	popSize := flag.Int("pop", 1000, "Overrides the population size from the configuration file.")
	generations := flag.Int("generations", 500, "Overrides the generation budget from the configuration file.")
	trials := flag.Int("trials", 10, "Overrides the number of repetitions from the configuration file.")
	seed := flag.Uint64("seed", 1, "Seed for the WyRand source driving mutation and reproduction.")
	flag.Parse()

	opts, err := neat.ReadNeatOptionsFromFile(*configPath)
	if err != nil {
		log.Fatalf("failed to read NEAT options: %s", err)
	}
	opts.PopSize = *popSize
	opts.NumGenerations = *generations
	opts.NumRuns = *trials

	ctx := neat.NewContext(context.Background(), opts)

	exp := experiment.Experiment{Id: 0, Name: "xor", MaxFitnessScore: 400.0}
	target := experiment.HookFunc(func(stats experiment.Stats) experiment.Flow {
		if stats.BestFound && stats.Best.Fitness >= solvedFitness {
			return experiment.Break
		}
		return experiment.Continue
	})

	src := rng.NewWyRand(*seed)
	err = exp.Execute(ctx, xorScenario{}, ctrnn.KernelContinuous, relu, src, nil, target)
	if err != nil {
		log.Fatalf("failed to run XOR experiment: %s", err)
	}

	exp.PrintStatistics()

	if m, trial, found := exp.BestMember(true); found {
		fmt.Printf("\nSolved in trial %d with fitness %f\n", trial, m.Fitness)
	} else {
		fmt.Println("\nNo trial reached the target fitness")
	}
}
