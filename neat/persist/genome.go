package persist

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gastrodon/ctrneat/neat/genetics"
)

// ErrSerialization wraps any failure to encode or decode a persisted
// genome.
var ErrSerialization = errors.New("persist: serialization error")

type connectionRecord struct {
	Inno      int     `yaml:"inno"`
	From      int     `yaml:"from"`
	To        int     `yaml:"to"`
	Weight    Float64 `yaml:"weight"`
	Enabled   bool    `yaml:"enabled"`
	Bias      Float64 `yaml:"bias"`
	Timescale Float64 `yaml:"timescale"`
}

type genomeRecord struct {
	Sensory     int                 `yaml:"sensory"`
	Action      int                 `yaml:"action"`
	Nodes       []genetics.NodeKind `yaml:"nodes"`
	Connections []connectionRecord  `yaml:"connections"`
}

func toRecord(g *genetics.Genome) genomeRecord {
	connections := make([]connectionRecord, len(g.Connections))
	for i, c := range g.Connections {
		connections[i] = connectionRecord{
			Inno:      c.Inno,
			From:      c.From,
			To:        c.To,
			Weight:    Float64(c.Weight),
			Enabled:   c.Enabled,
			Bias:      Float64(c.Bias),
			Timescale: Float64(c.Timescale),
		}
	}
	return genomeRecord{
		Sensory:     g.Sensory,
		Action:      g.Action,
		Nodes:       g.Nodes,
		Connections: connections,
	}
}

func fromRecord(r genomeRecord) *genetics.Genome {
	connections := make([]genetics.Connection, len(r.Connections))
	for i, c := range r.Connections {
		connections[i] = genetics.Connection{
			Inno:      c.Inno,
			From:      c.From,
			To:        c.To,
			Weight:    float64(c.Weight),
			Enabled:   c.Enabled,
			Bias:      float64(c.Bias),
			Timescale: float64(c.Timescale),
		}
	}
	return &genetics.Genome{
		Sensory:     r.Sensory,
		Action:      r.Action,
		Nodes:       r.Nodes,
		Connections: connections,
	}
}

// EncodeGenome serializes g to YAML with every float stored by bit pattern.
func EncodeGenome(g *genetics.Genome) ([]byte, error) {
	out, err := yaml.Marshal(toRecord(g))
	if err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}
	return out, nil
}

// DecodeGenome parses a genome previously produced by EncodeGenome.
func DecodeGenome(data []byte) (*genetics.Genome, error) {
	var r genomeRecord
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}
	return fromRecord(r), nil
}
