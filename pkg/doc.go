// Package pkg holds the libraries behind the ghostleg command.
//
// # Overview
//
// ghostleg plays the ladder lottery: players start at the top of a lane,
// follow the rungs down and end on a result. The pkg directory is layered
// from the pure engine outwards:
//
//  1. [ladder] - Rung generation, path tracing and path animation
//  2. [layout] - Placing a ladder on a character canvas
//  3. [round] - A game: players, results and the ladder that decides them
//  4. [store] - Persistence (file, redis, mongo, memory)
//  5. [render] - DOT, SVG, PNG and JSON export
//  6. [api] - The HTTP API
//
// [config], [errors], [observability] and [buildinfo] support all of them.
//
// # Architecture
//
//	round.Options
//	     ↓
//	[ladder] Generate → RungMap → Tracer → paths
//	     ↓
//	[round] Round ──→ [store] ──→ [api]
//	     ↓
//	[layout] Grid → Animator strokes (terminal)
//	[render] DOT → SVG/PNG (graphviz)
//
// # Quick Start
//
//	r, err := round.New(ctx, round.Options{
//	    Names:   []string{"ann", "bob", "cid"},
//	    Results: []string{"coffee", "lunch", "free"},
//	    Seed:    42,
//	})
//	if err != nil {
//	    return err
//	}
//	svg, err := render.RenderSVG(ctx, render.ToDOT(r, render.DOTOptions{Lane: 0}))
//
// [ladder]: github.com/matzehuels/ghostleg/pkg/ladder
// [layout]: github.com/matzehuels/ghostleg/pkg/layout
// [round]: github.com/matzehuels/ghostleg/pkg/round
// [store]: github.com/matzehuels/ghostleg/pkg/store
// [render]: github.com/matzehuels/ghostleg/pkg/render
// [api]: github.com/matzehuels/ghostleg/pkg/api
// [config]: github.com/matzehuels/ghostleg/pkg/config
// [errors]: github.com/matzehuels/ghostleg/pkg/errors
// [observability]: github.com/matzehuels/ghostleg/pkg/observability
// [buildinfo]: github.com/matzehuels/ghostleg/pkg/buildinfo
package pkg
