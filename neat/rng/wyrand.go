// Package rng layers a unified event-probability abstraction over a raw
// 64-bit bit source, keeping the two protocols decoupled per the design
// notes on event-probability coupling: mutation operators call Happens with
// a named Event, never touching the raw source directly.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math/bits"
)

// Source produces raw pseudo-random 64-bit values.
type Source interface {
	NextU64() uint64
}

const (
	wyConst0 uint64 = 0x2d358dcc_aa6c78a5
	wyConst1 uint64 = 0x8bb84b93_962eacc9
)

// WyRand is a small, fast, non-cryptographic PRNG. Each call advances a
// single 64-bit state by a fixed additive constant, then mixes it through a
// 128-bit multiply-xor-fold step.
type WyRand struct {
	state uint64
}

// NewWyRand returns a WyRand source seeded with the given state.
func NewWyRand(seed uint64) *WyRand {
	return &WyRand{state: seed}
}

// SeedFromEntropy returns a WyRand source seeded from the OS CSPRNG, the
// portable equivalent of reading 8 bytes from /dev/urandom and decoding them
// little-endian.
func SeedFromEntropy() (*WyRand, error) {
	seed, err := seedFromEntropy()
	if err != nil {
		return nil, err
	}
	return NewWyRand(seed), nil
}

func seedFromEntropy() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// NextU64 advances the generator and returns the next pseudo-random value.
func (w *WyRand) NextU64() uint64 {
	w.state += wyConst0
	hi, lo := bits.Mul64(w.state, w.state^wyConst1)
	return lo ^ hi
}
