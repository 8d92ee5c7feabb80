package ladder

import (
	"math/rand/v2"
	"slices"
)

// Sampler is the randomness capability the generator draws from.
// IntN returns a uniform value in [0, n) and may panic if n <= 0.
//
// *rand.Rand from math/rand/v2 satisfies Sampler.
type Sampler interface {
	IntN(n int) int
}

// NewSampler returns a PCG-backed Sampler seeded from seed.
// Two samplers with the same seed produce the same sequence.
func NewSampler(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SampleRows draws k distinct values from pool, uniformly and without
// replacement, in no particular order. The pool is not modified.
//
// If the pool holds fewer than k values, all of them are returned (in
// shuffled order) and the caller receives fewer than it asked for.
func SampleRows(s Sampler, k int, pool []int) []int {
	if k <= 0 || len(pool) == 0 {
		return []int{}
	}
	buf := slices.Clone(pool)
	k = min(k, len(buf))

	// partial Fisher-Yates: buf[:i] holds the picks so far
	for i := range k {
		j := i + s.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:k:k]
}
