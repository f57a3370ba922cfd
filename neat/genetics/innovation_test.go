package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInnovationRegistry_SamePairSameID(t *testing.T) {
	r := NewInnovationRegistry(10)
	a := r.Path(2, 5)
	b := r.Path(2, 5)
	assert.Equal(t, a, b)
}

func TestInnovationRegistry_DistinctPairsDistinctIDs(t *testing.T) {
	r := NewInnovationRegistry(0)
	a := r.Path(2, 5)
	b := r.Path(5, 2)
	assert.NotEqual(t, a, b)
}

func TestInnovationRegistry_StartsAtHead(t *testing.T) {
	r := NewInnovationRegistry(42)
	assert.Equal(t, 42, r.Path(0, 1))
}

func TestInnovationRegistry_HeadAdvancesOnlyOnFreshPairs(t *testing.T) {
	r := NewInnovationRegistry(0)
	r.Path(0, 1)
	assert.Equal(t, 1, r.Head())
	r.Path(0, 1)
	assert.Equal(t, 1, r.Head())
	r.Path(1, 2)
	assert.Equal(t, 2, r.Head())
}
