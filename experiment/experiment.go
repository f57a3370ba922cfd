package experiment

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"github.com/gastrodon/ctrneat/neat/genetics"
)

// Experiment is a collection of trials run with the same Scenario and
// Options, useful for statistical analysis across repeated runs.
type Experiment struct {
	Id       int
	Name     string
	RandSeed int64
	Trials
	// MaxFitnessScore normalizes EfficiencyScore's fitness term when set
	// positive; left at zero it contributes unnormalized.
	MaxFitnessScore float64
}

// AvgTrialDuration averages the wall-clock duration across every trial.
// Most trials end early once solved, so this reflects how quickly the
// configuration converges.
func (e *Experiment) AvgTrialDuration() time.Duration {
	if len(e.Trials) == 0 {
		return EmptyDuration
	}
	var total time.Duration
	for _, t := range e.Trials {
		total += t.Duration
	}
	return total / time.Duration(len(e.Trials))
}

// AvgGenerationDuration averages each trial's own average generation
// duration.
func (e *Experiment) AvgGenerationDuration() time.Duration {
	if len(e.Trials) == 0 {
		return EmptyDuration
	}
	var total time.Duration
	for _, t := range e.Trials {
		total += t.AvgGenerationDuration()
	}
	return total / time.Duration(len(e.Trials))
}

// AvgGenerationsPerTrial averages the generation count across trials.
func (e *Experiment) AvgGenerationsPerTrial() float64 {
	if len(e.Trials) == 0 {
		return 0
	}
	total := 0.0
	for _, t := range e.Trials {
		total += float64(len(t.Generations))
	}
	return total / float64(len(e.Trials))
}

// MostRecentTrialEvalTime is the most recent generation-execution timestamp
// across every trial.
func (e *Experiment) MostRecentTrialEvalTime() time.Time {
	var u time.Time
	for _, t := range e.Trials {
		ut := t.RecentGenerationEvalTime()
		if u.Before(ut) {
			u = ut
		}
	}
	return u
}

// BestMember finds the fittest member across every trial, returning it
// alongside the trial index it was found in.
func (e *Experiment) BestMember(onlySolvers bool) (genetics.Member, int, bool) {
	bestTrial := -1
	var best genetics.Member
	found := false
	for i, t := range e.Trials {
		m, ok := t.BestMember(onlySolvers)
		if !ok {
			continue
		}
		if !found || m.Fitness > best.Fitness {
			best = m
			bestTrial = i
			found = true
		}
	}
	return best, bestTrial, found
}

// Solved reports whether at least one trial solved the scenario.
func (e *Experiment) Solved() bool {
	for _, t := range e.Trials {
		if t.Solved() {
			return true
		}
	}
	return false
}

// BestFitness returns the best member's fitness for each trial.
func (e *Experiment) BestFitness() Floats {
	x := make(Floats, len(e.Trials))
	for i, t := range e.Trials {
		if m, ok := t.BestMember(false); ok {
			x[i] = m.Fitness
		}
	}
	return x
}

// BestComplexity returns the best member's genome complexity for each
// trial.
func (e *Experiment) BestComplexity() Floats {
	x := make(Floats, len(e.Trials))
	for i, t := range e.Trials {
		if m, ok := t.BestMember(false); ok && m.Genome != nil {
			x[i] = float64(m.Genome.Complexity())
		}
	}
	return x
}

// Diversity returns the average species count for each trial.
func (e *Experiment) Diversity() Floats {
	x := make(Floats, len(e.Trials))
	for i, t := range e.Trials {
		x[i] = t.Diversity().Mean()
	}
	return x
}

// GenerationsPerTrial returns the generation count for each trial.
func (e *Experiment) GenerationsPerTrial() Floats {
	x := make(Floats, len(e.Trials))
	for i, t := range e.Trials {
		x[i] = float64(len(t.Generations))
	}
	return x
}

// TrialsSolved returns the number of trials that solved the scenario.
func (e *Experiment) TrialsSolved() int {
	count := 0
	for _, t := range e.Trials {
		if t.Solved() {
			count++
		}
	}
	return count
}

// SuccessRate returns the fraction of trials that solved the scenario.
func (e *Experiment) SuccessRate() float64 {
	if len(e.Trials) == 0 {
		return 0
	}
	return float64(e.TrialsSolved()) / float64(len(e.Trials))
}

// AvgWinner averages winning-genome complexity and species diversity
// across every trial that solved the scenario.
func (e *Experiment) AvgWinner() (avgComplexity, avgDiversity float64) {
	totalComplexity, totalDiversity := 0, 0
	count := 0
	for i := range e.Trials {
		t := &e.Trials[i]
		if !t.Solved() {
			continue
		}
		complexity, diversity := t.Winner()
		totalComplexity += complexity
		totalDiversity += diversity
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(totalComplexity) / float64(count), float64(totalDiversity) / float64(count)
}

// EfficiencyScore favors configurations that solve quickly (fewer
// generations, less wall-clock time per generation), with simple winner
// genomes, while still rewarding high fitness and a high success rate.
func (e *Experiment) EfficiencyScore() float64 {
	meanComplexity, meanFitness := 0.0, 0.0
	if len(e.Trials) > 1 {
		count := 0.0
		for i := range e.Trials {
			t := &e.Trials[i]
			if !t.Solved() {
				continue
			}
			if t.WinnerGeneration == nil {
				t.Winner()
			}
			if t.WinnerGeneration != nil && t.WinnerGeneration.Best.Genome != nil {
				meanComplexity += float64(t.WinnerGeneration.Best.Genome.Complexity())
			}
			if t.WinnerGeneration != nil {
				meanFitness += t.WinnerGeneration.Best.Fitness
			}
			count++
		}
		if count > 0 {
			meanComplexity /= count
			meanFitness /= count
		}
	}

	fitnessScore := meanFitness
	if e.MaxFitnessScore > 0 {
		fitnessScore /= e.MaxFitnessScore
		fitnessScore *= 100
	}

	score := e.AvgGenerationDuration().Seconds() * 1000.0 * e.AvgGenerationsPerTrial() * meanComplexity
	if score > 0 {
		score = e.SuccessRate() * fitnessScore / math.Log(score)
	}
	return score
}

// PrintStatistics writes a human-readable summary of this experiment to
// stdout.
func (e *Experiment) PrintStatistics() {
	fmt.Printf("\nSolved %d trials from %d, success rate: %f\n", e.TrialsSolved(), len(e.Trials), e.SuccessRate())
	fmt.Printf("Random seed: %d\n", e.RandSeed)
	fmt.Printf("Average\n\tTrial duration:\t\t%s\n\tGeneration duration:\t%s\n\tGenerations/trial:\t%.1f\n",
		e.AvgTrialDuration(), e.AvgGenerationDuration(), e.AvgGenerationsPerTrial())

	if m, trid, found := e.BestMember(true); found {
		complexity, diversity := e.Trials[trid].Winner()
		fmt.Printf("\nChampion found in trial %d\n\tComplexity:\t\t%d\n\tDiversity:\t\t%d\n\tFitness:\t\t%f\n",
			trid, complexity, diversity, m.Fitness)
	} else {
		fmt.Println("\nNo winner found in the experiment!")
	}

	if len(e.Trials) > 1 {
		avgComplexity, avgDiversity := e.AvgWinner()
		fmt.Printf("\nAverage among winners\n\tComplexity:\t\t%f\n\tDiversity:\t\t%f\n", avgComplexity, avgDiversity)
	}

	meanComplexity, meanDiversity, meanFitness := 0.0, 0.0, 0.0
	count := float64(len(e.Trials))
	for _, t := range e.Trials {
		fitness, diversity := t.Average()
		meanComplexity += t.BestComplexity().Mean()
		meanDiversity += diversity.Mean()
		meanFitness += fitness.Mean()
	}
	if count > 0 {
		meanComplexity /= count
		meanDiversity /= count
		meanFitness /= count
	}
	fmt.Printf("\nAverages for all organisms evaluated during experiment\n\tDiversity:\t\t%f\n\tComplexity:\t\t%f\n\tFitness:\t\t%f\n",
		meanDiversity, meanComplexity, meanFitness)

	fmt.Printf("\nEfficiency score:\t\t%f\n\n", e.EfficiencyScore())
}

// Write encodes this experiment's data to w via GOB.
func (e *Experiment) Write(w io.Writer) error {
	enc := gob.NewEncoder(w)
	return e.Encode(enc)
}

// Encode writes this experiment with the provided GOB encoder.
func (e *Experiment) Encode(enc *gob.Encoder) error {
	if err := enc.Encode(e.Id); err != nil {
		return err
	}
	if err := enc.Encode(e.Name); err != nil {
		return err
	}
	if err := enc.Encode(len(e.Trials)); err != nil {
		return err
	}
	for i := range e.Trials {
		if err := e.Trials[i].Encode(enc); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes this experiment's data from r via GOB.
func (e *Experiment) Read(r io.Reader) error {
	dec := gob.NewDecoder(r)
	return e.Decode(dec)
}

// Decode populates this experiment from the provided GOB decoder.
func (e *Experiment) Decode(dec *gob.Decoder) error {
	if err := dec.Decode(&e.Id); err != nil {
		return err
	}
	if err := dec.Decode(&e.Name); err != nil {
		return err
	}
	var ntrial int
	if err := dec.Decode(&ntrial); err != nil {
		return err
	}
	e.Trials = make(Trials, ntrial)
	for i := 0; i < ntrial; i++ {
		if err := e.Trials[i].Decode(dec); err != nil {
			return err
		}
	}
	return nil
}

// WriteNPZ dumps per-trial and per-generation statistics to an NPZ archive
// for downstream analysis with numpy.
func (e *Experiment) WriteNPZ(w io.Writer) error {
	trialsFitness := mat.NewDense(len(e.Trials), 2, nil)
	trialsComplexity := mat.NewDense(len(e.Trials), 2, nil)
	for i, t := range e.Trials {
		fitness, _ := t.Average()
		trialsFitness.SetRow(i, fitness.MeanVariance())
		trialsComplexity.SetRow(i, t.BestComplexity().MeanVariance())
	}

	out := npz.NewWriter(w)
	if err := out.Write("trials_fitness", trialsFitness); err != nil {
		return err
	}
	if err := out.Write("trials_complexity", trialsComplexity); err != nil {
		return err
	}

	for i, t := range e.Trials {
		fitness, diversity := t.Average()
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_mean_fitnesses", i), fitness); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_diversity", i), diversity); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_best_fitnesses", i), t.BestFitness()); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_best_complexities", i), t.BestComplexity()); err != nil {
			return err
		}
	}
	return out.Close()
}

// Experiments is a sortable list of experiments by most recent execution
// time and id.
type Experiments []Experiment

func (es Experiments) Len() int      { return len(es) }
func (es Experiments) Swap(i, j int) { es[i], es[j] = es[j], es[i] }
func (es Experiments) Less(i, j int) bool {
	ui := es[i].MostRecentTrialEvalTime()
	uj := es[j].MostRecentTrialEvalTime()
	if ui.Equal(uj) {
		return es[i].Id < es[j].Id
	}
	return ui.Before(uj)
}
