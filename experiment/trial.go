package experiment

import (
	"encoding/gob"
	"time"

	"github.com/gastrodon/ctrneat/neat/genetics"
)

// Trial holds statistics for one independent evolutionary run.
type Trial struct {
	// Id is the trial number.
	Id int
	// Generations holds per-generation results in execution order.
	Generations Generations
	// WinnerGeneration is the first generation that solved the scenario, if
	// any.
	WinnerGeneration *Generation

	// Duration is the elapsed wall-clock time between trial start and
	// finish.
	Duration time.Duration
}

// AvgGenerationDuration averages the evaluation duration across every
// generation in this trial.
func (t *Trial) AvgGenerationDuration() time.Duration {
	if len(t.Generations) == 0 {
		return EmptyDuration
	}
	var total time.Duration
	for _, g := range t.Generations {
		total += g.Duration
	}
	return total / time.Duration(len(t.Generations))
}

// RecentGenerationEvalTime is the most recent Executed timestamp recorded
// among this trial's generations.
func (t *Trial) RecentGenerationEvalTime() time.Time {
	var u time.Time
	for _, g := range t.Generations {
		if u.Before(g.Executed) {
			u = g.Executed
		}
	}
	return u
}

// BestMember finds the fittest member across every generation in this
// trial. When onlySolvers is set, only generations flagged Solved are
// considered.
func (t *Trial) BestMember(onlySolvers bool) (genetics.Member, bool) {
	var best genetics.Member
	found := false
	for _, g := range t.Generations {
		if onlySolvers && !g.Solved {
			continue
		}
		if !found || g.Best.Fitness > best.Fitness {
			best = g.Best
			found = true
		}
	}
	return best, found
}

// Solved reports whether any generation in this trial was flagged solved.
func (t *Trial) Solved() bool {
	for _, g := range t.Generations {
		if g.Solved {
			return true
		}
	}
	return false
}

// BestFitness returns the best member's fitness for each generation.
func (t *Trial) BestFitness() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		x[i] = g.Best.Fitness
	}
	return x
}

// BestComplexity returns the best member's genome complexity for each
// generation.
func (t *Trial) BestComplexity() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		if g.Best.Genome != nil {
			x[i] = float64(g.Best.Genome.Complexity())
		}
	}
	return x
}

// Diversity returns the species count for each generation.
func (t *Trial) Diversity() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		x[i] = float64(g.Diversity)
	}
	return x
}

// Average returns the mean best-species fitness, alongside diversity, for
// each generation in this trial.
func (t *Trial) Average() (fitness, diversity Floats) {
	fitness = make(Floats, len(t.Generations))
	diversity = make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		fitness[i] = g.Fitness.Mean()
		diversity[i] = float64(g.Diversity)
	}
	return fitness, diversity
}

// Winner reports the winning genome's complexity and the species diversity
// present when it was found.
func (t *Trial) Winner() (complexity, diversity int) {
	if t.WinnerGeneration == nil {
		for i := range t.Generations {
			if t.Generations[i].Solved {
				t.WinnerGeneration = &t.Generations[i]
				break
			}
		}
	}
	if t.WinnerGeneration != nil && t.WinnerGeneration.Best.Genome != nil {
		complexity = t.WinnerGeneration.Best.Genome.Complexity()
		diversity = t.WinnerGeneration.Diversity
	}
	return complexity, diversity
}

// Encode writes this trial with the provided GOB encoder.
func (t *Trial) Encode(enc *gob.Encoder) error {
	if err := enc.Encode(t.Id); err != nil {
		return err
	}
	if err := enc.Encode(len(t.Generations)); err != nil {
		return err
	}
	for i := range t.Generations {
		if err := t.Generations[i].Encode(enc); err != nil {
			return err
		}
	}
	return nil
}

// Decode populates this trial from the provided GOB decoder.
func (t *Trial) Decode(dec *gob.Decoder) error {
	if err := dec.Decode(&t.Id); err != nil {
		return err
	}
	var ngen int
	if err := dec.Decode(&ngen); err != nil {
		return err
	}
	t.Generations = make(Generations, ngen)
	for i := 0; i < ngen; i++ {
		if err := t.Generations[i].Decode(dec); err != nil {
			return err
		}
	}
	return nil
}

// Trials is a sortable collection of trials by most recent execution time
// and id.
type Trials []Trial

func (ts Trials) Len() int      { return len(ts) }
func (ts Trials) Swap(i, j int) { ts[i], ts[j] = ts[j], ts[i] }
func (ts Trials) Less(i, j int) bool {
	ui := ts[i].RecentGenerationEvalTime()
	uj := ts[j].RecentGenerationEvalTime()
	if ui.Equal(uj) {
		return ts[i].Id < ts[j].Id
	}
	return ui.Before(uj)
}
