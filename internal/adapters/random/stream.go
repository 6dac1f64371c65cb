// Package random provides the single pseudorandom stream the core consumes
// for every choice that must be reproducible under a fixed seed (spec §5,
// §9): random:N selectors, random generation-mode sampling, seed-mode
// random, and zero-weight substitutions.
package random

import "math/rand/v2"

// Stream implements usecases.RandomSource on top of math/rand/v2, seeded
// once per plan. It is never shared across plans (spec §5: "the
// pseudorandom stream is scoped to one plan and not reused").
type Stream struct {
	rng *rand.Rand
}

// NewStream creates a pseudorandom stream seeded deterministically from
// seed, so that two Streams built from the same seed produce identical
// sequences (spec §8 determinism property).
func NewStream(seed int64) *Stream {
	return &Stream{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed>>1)|1))}
}

// IntN returns a pseudorandom integer in [0, n).
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.IntN(n)
}

// Shuffle permutes a slice of length n in place using swap(i, j).
func (s *Stream) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Int64 returns a pseudorandom int64, used to mint seed-mode "random" seeds.
func (s *Stream) Int64() int64 {
	return s.rng.Int64()
}
