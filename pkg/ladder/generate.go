package ladder

import (
	"fmt"
	"slices"
)

// DefaultMaxRungs is the exclusive upper bound on rungs per gap used when
// no other value is configured.
const DefaultMaxRungs = 6

// minRungs is the inclusive lower bound on rungs per gap.
const minRungs = 2

// RungMap holds the rung rows of every gap, indexed by gap.
// Gap i lies between lane i and lane i+1, so a ladder with N lanes has
// exactly N-1 entries. Every entry is strictly ascending, and no row of gap
// i also appears in gap i-1.
type RungMap [][]int

// Gaps returns the number of gaps.
func (m RungMap) Gaps() int { return len(m) }

// Lanes returns the number of lanes the map spans.
func (m RungMap) Lanes() int { return len(m) + 1 }

// Rows returns the rung rows of gap. It panics if gap is out of range.
func (m RungMap) Rows(gap int) []int { return m[gap] }

// RungCount returns the total number of rungs across all gaps.
func (m RungMap) RungCount() int {
	n := 0
	for _, rows := range m {
		n += len(rows)
	}
	return n
}

// Clone returns a deep copy of m.
func (m RungMap) Clone() RungMap {
	out := make(RungMap, len(m))
	for i, rows := range m {
		out[i] = slices.Clone(rows)
	}
	return out
}

// GenerateOptions configures [Generate].
type GenerateOptions struct {
	Lanes    int // number of lanes, at least 2
	MaxRungs int // exclusive upper bound on rungs per gap, at least 3
	Rows     int // number of rung rows, at least 1
}

// Generate builds a random ladder.
//
// For every gap it draws a rung count uniformly from [2, MaxRungs), then
// samples that many rows from [0, Rows) minus the rows already used by the
// previous gap. When that pool is too small the gap simply receives fewer
// rungs.
//
// Generate panics if opts violates the bounds documented on
// [GenerateOptions].
func Generate(opts GenerateOptions, s Sampler) RungMap {
	if opts.Lanes < 2 {
		panic(fmt.Sprintf("ladder: Generate needs at least 2 lanes, got %d", opts.Lanes))
	}
	if opts.Rows < 1 {
		panic(fmt.Sprintf("ladder: Generate needs at least 1 row, got %d", opts.Rows))
	}
	if opts.MaxRungs <= minRungs {
		panic(fmt.Sprintf("ladder: Generate needs MaxRungs > %d, got %d", minRungs, opts.MaxRungs))
	}

	m := make(RungMap, opts.Lanes-1)
	for gap := range m {
		count := minRungs + s.IntN(opts.MaxRungs-minRungs)

		var prev []int
		if gap > 0 {
			prev = m[gap-1]
		}
		rows := SampleRows(s, count, candidateRows(opts.Rows, prev))
		slices.Sort(rows)
		m[gap] = rows
	}
	return m
}

// candidateRows returns [0, rows) without the values in exclude.
// exclude must be sorted ascending.
func candidateRows(rows int, exclude []int) []int {
	pool := make([]int, 0, rows)
	for r := range rows {
		if _, found := slices.BinarySearch(exclude, r); !found {
			pool = append(pool, r)
		}
	}
	return pool
}
