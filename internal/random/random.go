// Package random provides the uniform integer sampling used by the maze
// generator.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Generator draws integers uniformly from a half-open range.
type Generator interface {
	// Generate returns a value in [min, max). When max <= min it returns min.
	Generate(min, max int) int
}

// Source is a Generator backed by a PCG stream.
// Sampling uses rand.IntN, which is exactly uniform; the modulo
// approximation of a raw generator output is not reproduced.
type Source struct {
	rng *rand.Rand
}

// NewEntropy returns a Source seeded from OS entropy so that every process
// produces a different maze.
func NewEntropy() *Source {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// runtime-seeded global generator just in case.
		return &Source{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	s1 := binary.LittleEndian.Uint64(buf[:8])
	s2 := binary.LittleEndian.Uint64(buf[8:])
	return &Source{rng: rand.New(rand.NewPCG(s1, s2))}
}

// NewSeeded returns a deterministic Source. A zero seed falls back to
// NewEntropy.
func NewSeeded(seed int64) *Source {
	if seed == 0 {
		return NewEntropy()
	}
	return &Source{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// Generate returns a value in [min, max).
func (s *Source) Generate(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min)
}

// Sequence replays a fixed list of values, wrapping around at the end.
// Each value is clamped into the requested range. Used for deterministic
// generation in tests.
type Sequence struct {
	values []int
	next   int
}

// NewSequence creates a Sequence over values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Generate returns the next value of the sequence clamped to [min, max).
func (s *Sequence) Generate(min, max int) int {
	if max <= min || len(s.values) == 0 {
		return min
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < min {
		return min
	}
	if v >= max {
		return max - 1
	}
	return v
}
