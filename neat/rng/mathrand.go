package rng

import "math/rand"

// MathRandSource adapts the standard library's *rand.Rand to Source, the
// documented fallback raw bit source when WyRand or OS entropy is
// unavailable.
type MathRandSource struct {
	r *rand.Rand
}

// NewMathRandSource wraps a *rand.Rand seeded by the caller.
func NewMathRandSource(seed int64) *MathRandSource {
	return &MathRandSource{r: rand.New(rand.NewSource(seed))}
}

// NextU64 returns the next pseudo-random 64-bit value.
func (m *MathRandSource) NextU64() uint64 {
	return m.r.Uint64()
}
