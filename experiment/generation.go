package experiment

import (
	"encoding/gob"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/gastrodon/ctrneat/neat/genetics"
	"github.com/gastrodon/ctrneat/neat/persist"
)

// Generation holds the results of evaluating and speciating one
// generation's population.
type Generation struct {
	// Id is this generation's index within its trial.
	Id int
	// Executed is when this generation's evaluation completed.
	Executed time.Time
	// Duration is the elapsed time to evaluate, speciate, and run the hooks;
	// reproducing the next population is not included.
	Duration time.Duration
	// Best is the fittest member found across every species this
	// generation.
	Best genetics.Member
	// Solved flags whether a hook or built-in target ended the run here.
	Solved bool

	// Fitness holds each species' best member's fitness.
	Fitness Floats
	// Diversity is the number of species present this generation.
	Diversity int

	// TrialId is the Trial this Generation was evaluated in.
	TrialId int
}

// FillSpeciesStatistics records per-species best fitness and the overall
// best member across species.
func (g *Generation) FillSpeciesStatistics(species []*genetics.Species) {
	g.Diversity = len(species)
	g.Fitness = make(Floats, g.Diversity)

	bestFitness := math.Inf(-1)
	for i, sp := range species {
		best := sp.Last()
		if best == nil {
			continue
		}
		g.Fitness[i] = best.Fitness
		if best.Fitness > bestFitness {
			bestFitness = best.Fitness
			g.Best = *best
		}
	}
}

// Encode writes this generation with the provided GOB encoder, persisting
// the best genome's connection structure through persist.EncodeGenome so
// floats round-trip bit-exact.
func (g *Generation) Encode(enc *gob.Encoder) error {
	if err := enc.Encode(g.Id); err != nil {
		return err
	}
	if err := enc.Encode(g.Executed); err != nil {
		return err
	}
	if err := enc.Encode(g.Solved); err != nil {
		return err
	}
	if err := enc.Encode(g.Fitness); err != nil {
		return err
	}
	if err := enc.Encode(g.Diversity); err != nil {
		return err
	}
	if err := enc.Encode(g.Best.Fitness); err != nil {
		return err
	}

	if g.Best.Genome != nil {
		data, err := persist.EncodeGenome(g.Best.Genome)
		if err != nil {
			return err
		}
		if err := enc.Encode(data); err != nil {
			return err
		}
	} else {
		if err := enc.Encode([]byte(nil)); err != nil {
			return err
		}
	}
	return nil
}

// Decode populates this generation from the provided GOB decoder.
func (g *Generation) Decode(dec *gob.Decoder) error {
	if err := dec.Decode(&g.Id); err != nil {
		return errors.Wrap(err, "failed to decode Id")
	}
	if err := dec.Decode(&g.Executed); err != nil {
		return errors.Wrap(err, "failed to decode Executed")
	}
	if err := dec.Decode(&g.Solved); err != nil {
		return errors.Wrap(err, "failed to decode Solved")
	}
	if err := dec.Decode(&g.Fitness); err != nil {
		return errors.Wrap(err, "failed to decode Fitness")
	}
	if err := dec.Decode(&g.Diversity); err != nil {
		return errors.Wrap(err, "failed to decode Diversity")
	}
	if err := dec.Decode(&g.Best.Fitness); err != nil {
		return errors.Wrap(err, "failed to decode Best.Fitness")
	}

	var data []byte
	if err := dec.Decode(&data); err != nil {
		return errors.Wrap(err, "failed to decode Best.Genome")
	}
	if len(data) > 0 {
		genome, err := persist.DecodeGenome(data)
		if err != nil {
			return errors.Wrap(err, "failed to decode Best.Genome")
		}
		g.Best.Genome = genome
	}
	return nil
}

// Generations is a sortable collection of generations by execution time and
// Id.
type Generations []Generation

func (gs Generations) Len() int      { return len(gs) }
func (gs Generations) Swap(i, j int) { gs[i], gs[j] = gs[j], gs[i] }
func (gs Generations) Less(i, j int) bool {
	if gs[i].Executed.Equal(gs[j].Executed) {
		return gs[i].Id < gs[j].Id
	}
	return gs[i].Executed.Before(gs[j].Executed)
}
