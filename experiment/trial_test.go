package experiment

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fitnessScore(index int) float64 {
	return float64(index) * math.E
}

func buildTestTrial(id, numGenerations int) *Trial {
	trial := Trial{Id: id, Generations: make(Generations, numGenerations)}
	for i := 0; i < numGenerations; i++ {
		trial.Generations[i] = *buildTestGeneration(i+1, fitnessScore(i+1))
	}
	return &trial
}

func TestTrial_AvgGenerationDuration(t *testing.T) {
	trial := Trial{Id: 1, Generations: Generations{
		{Duration: 3}, {Duration: 10}, {Duration: 2},
	}}
	assert.Equal(t, time.Duration(5), trial.AvgGenerationDuration())
}

func TestTrial_AvgGenerationDuration_empty(t *testing.T) {
	trial := Trial{Id: 1}
	assert.Equal(t, EmptyDuration, trial.AvgGenerationDuration())
}

func TestTrial_RecentGenerationEvalTime(t *testing.T) {
	now := time.Now().Add(-10 * time.Second)
	trial := buildTestTrial(1, 3)
	assert.True(t, trial.RecentGenerationEvalTime().After(now))
}

func TestTrial_RecentGenerationEvalTime_empty(t *testing.T) {
	trial := Trial{Id: 1}
	assert.Equal(t, time.Time{}, trial.RecentGenerationEvalTime())
}

func TestTrial_BestMember(t *testing.T) {
	trial := buildTestTrial(1, 3)
	m, ok := trial.BestMember(false)
	require.True(t, ok)
	assert.Equal(t, fitnessScore(3), m.Fitness)
}

func TestTrial_BestMember_onlySolvers_empty(t *testing.T) {
	trial := Trial{Id: 1}
	_, ok := trial.BestMember(true)
	assert.False(t, ok)
}

func TestTrial_Solved(t *testing.T) {
	trial := buildTestTrial(1, 3)
	assert.True(t, trial.Solved())
}

func TestTrial_Solved_empty(t *testing.T) {
	trial := Trial{Id: 1}
	assert.False(t, trial.Solved())
}

func TestTrial_BestFitness(t *testing.T) {
	trial := buildTestTrial(1, 3)
	fitness := trial.BestFitness()
	require.Equal(t, 3, len(fitness))
	assert.Equal(t, fitnessScore(3), fitness[2])
}

func TestTrial_Diversity(t *testing.T) {
	trial := buildTestTrial(1, 3)
	div := trial.Diversity()
	require.Equal(t, 3, len(div))
	assert.Equal(t, 3.0, div[0])
}

func TestTrial_Winner(t *testing.T) {
	trial := buildTestTrial(1, 3)
	complexity, diversity := trial.Winner()
	assert.NotNil(t, trial.WinnerGeneration)
	assert.Equal(t, 3, diversity)
	assert.True(t, complexity > 0)
}

func TestTrial_Winner_empty(t *testing.T) {
	trial := Trial{Id: 1}
	complexity, diversity := trial.Winner()
	assert.Equal(t, 0, complexity)
	assert.Equal(t, 0, diversity)
	assert.Nil(t, trial.WinnerGeneration)
}

func TestTrial_EncodeDecode(t *testing.T) {
	trial := buildTestTrial(1, 3)

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	require.NoError(t, trial.Encode(enc), "failed to encode trial")

	dec := gob.NewDecoder(bytes.NewBuffer(buf.Bytes()))
	decoded := Trial{}
	require.NoError(t, decoded.Decode(dec), "failed to decode trial")

	require.Equal(t, len(trial.Generations), len(decoded.Generations))
	for i := range trial.Generations {
		assert.Equal(t, trial.Generations[i].Id, decoded.Generations[i].Id)
		assert.Equal(t, trial.Generations[i].Best.Fitness, decoded.Generations[i].Best.Fitness)
	}
}
