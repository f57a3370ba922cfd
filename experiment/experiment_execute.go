package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gastrodon/ctrneat/neat"
	"github.com/gastrodon/ctrneat/neat/ctrnn"
	"github.com/gastrodon/ctrneat/neat/genetics"
	"github.com/gastrodon/ctrneat/neat/rng"
)

// initialPopulation spawns size independent, unconnected genomes sharing
// the scenario's sensory/action arity, alongside the innovation id one past
// the fully-connected sensory/bias -> action layer.
func initialPopulation(sensory, action, size int) ([]*genetics.Genome, int) {
	genomes := make([]*genetics.Genome, size)
	innoHead := 0
	for i := 0; i < size; i++ {
		g, head := genetics.New(sensory, action)
		genomes[i] = g
		innoHead = head
	}
	return genomes, innoHead
}

// evaluate compiles every genome into a Network and scores it against
// scenario, substituting the sentinel worst-case fitness for any run that
// drives the network's state or the scenario's own score to NaN.
func evaluate(genomes []*genetics.Genome, scenario Scenario, kernel ctrnn.Kernel, activation ctrnn.ActivationFunc) ([]genetics.Member, error) {
	members := make([]genetics.Member, len(genomes))
	for i, g := range genomes {
		network, err := ctrnn.Compile(g, kernel)
		if err != nil {
			return nil, err
		}
		fitness := scenario.Eval(network, activation)
		if math.IsNaN(fitness) || network.HasNaN() {
			fitness = -math.MaxFloat64
		}
		members[i] = genetics.Member{Genome: g, Fitness: fitness}
	}
	return members, nil
}

// Execute runs opts.NumRuns independent trials against scenario, each
// spawning an unconnected population of opts.PopSize genomes and advancing
// it generation by generation: evaluate, speciate, report to hooks and
// trialObserver, then reproduce. A Hook returning Break ends the trial after
// the generation that triggered it; an allocation that collapses the
// population to zero genomes ends the trial the same way, without error.
func (e *Experiment) Execute(ctx context.Context, scenario Scenario, kernel ctrnn.Kernel, activation ctrnn.ActivationFunc, src rng.Source, trialObserver TrialRunObserver, hooks ...Hook) error {
	opts, found := neat.FromContext(ctx)
	if !found {
		return neat.ErrNEATOptionsNotFound
	}

	sensory, action := scenario.IO()
	r := rng.New(src)
	table := opts.ProbabilityTable()
	coef := opts.DistanceCoefficients()

	if e.Trials == nil {
		e.Trials = make(Trials, opts.NumRuns)
	}

	for run := 0; run < opts.NumRuns; run++ {
		trialStart := time.Now()
		neat.InfoLog(fmt.Sprintf(">>>>> Spawning new population, run: %d", run))

		genomes, innoHead := initialPopulation(sensory, action, opts.PopSize)
		var priorReprs []genetics.SpeciesRepresentative
		var minFitness []float64

		trial := Trial{Id: run}
		if trialObserver != nil {
			trialObserver.TrialRunStarted(&trial)
		}

		for genID := 0; genID < opts.NumGenerations; genID++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			neat.InfoLog(fmt.Sprintf(">>>>> Generation:%3d\tRun: %d", genID, run))
			genStart := time.Now()

			members, err := evaluate(genomes, scenario, kernel, activation)
			if err != nil {
				neat.ErrorLog(fmt.Sprintf("!!!!! Evaluation failed in generation [%d]: %s", genID, err))
				return err
			}

			species := genetics.Speciate(members, priorReprs, coef, opts.CompatThreshold)

			generation := Generation{Id: genID, TrialId: run}
			generation.FillSpeciesStatistics(species)
			generation.Executed = time.Now()

			stats := Stats{
				GenerationIndex: genID,
				Species:         species,
				Best:            generation.Best,
				BestFound:       len(species) > 0,
			}
			solved := false
			for _, h := range hooks {
				if h.Observe(stats) == Break {
					solved = true
					break
				}
			}
			generation.Solved = solved

			generation.Duration = time.Since(genStart)
			trial.Generations = append(trial.Generations, generation)
			if trialObserver != nil {
				trialObserver.GenerationEvaluated(&trial, &generation)
			}

			if solved {
				neat.InfoLog(fmt.Sprintf(">>>>> Solved in generation [%d], fitness: %f <<<<<", genID, generation.Best.Fitness))
				break
			}

			nextGenomes, nextInnoHead, err := genetics.PopulationReproduce(species, minFitness, opts.PopSize, innoHead, r, table)
			if err != nil {
				neat.ErrorLog(fmt.Sprintf("!!!!! Reproduction failed in generation [%d]: %s", genID, err))
				return err
			}
			if len(nextGenomes) == 0 {
				neat.WarnLog(fmt.Sprintf(">>>>> Population collapsed to zero in generation [%d], ending trial <<<<<", genID))
				break
			}

			genomes = nextGenomes
			innoHead = nextInnoHead
			priorReprs = make([]genetics.SpeciesRepresentative, len(species))
			minFitness = make([]float64, len(species))
			for i, sp := range species {
				priorReprs[i] = sp.Repr
				minFitness[i] = math.Inf(-1)
				if best := sp.Last(); best != nil {
					minFitness[i] = best.Fitness
				}
			}
		}

		trial.Duration = time.Since(trialStart)
		e.Trials[run] = trial
		if trialObserver != nil {
			trialObserver.TrialRunFinished(&trial)
		}
	}

	return nil
}
