// Package ladder implements the ghost-leg (ladder lottery) engine.
//
// # Overview
//
// A ladder has N vertical lanes. Horizontal rungs join adjacent lanes at
// discrete rows. Starting from the top of a lane, a token walks down and
// crosses every rung it meets, ending on some lane at the bottom. Because no
// two rungs ever share an endpoint, the walk is unambiguous and tracing every
// lane yields a permutation of the lanes.
//
// # Generation
//
// [Generate] builds a [RungMap] gap by gap. Each gap (the space between lane
// i and lane i+1) gets between 2 and MaxRungs-1 rungs, sampled without
// replacement from the rows not used by the previous gap:
//
//	s := ladder.NewSampler(42)
//	m := ladder.Generate(ladder.GenerateOptions{Lanes: 4, MaxRungs: 6, Rows: 10}, s)
//
// Randomness is injected through the [Sampler] interface, so a seeded
// sampler always produces the same ladder.
//
// # Tracing
//
// [TracePath] walks one lane and returns the vertices where the path changes
// direction plus the terminal vertex. [BridgePoints] answers "which rungs
// touch this lane". [Tracer] precomputes those answers once per ladder and
// produces identical paths for every lane:
//
//	paths := ladder.NewTracer(m, 10).TraceAll()
//	finals := ladder.Finals(paths) // a permutation of 0..3
//
// # Animation
//
// The package does not draw anything. The presentation layer maps every
// (lane, row) vertex, including the virtual rows -1 and Rows, to a screen
// coordinate through a [Locator]. [Step] then reveals a path one segment at
// a time under a per-frame budget, and [Animator] keeps the cursor between
// frames.
//
// # Concurrency
//
// All functions are pure apart from the Sampler they are handed. A RungMap
// and the paths traced from it are read-only after generation and may be
// shared freely. An Animator must be driven from a single goroutine.
package ladder
