// Package render exports rounds for use outside the terminal.
//
// # Formats
//
//   - DOT: [ToDOT] describes the ladder as an undirected Graphviz graph with
//     every vertex pinned in place, so the neato engine draws it as-is.
//   - SVG and PNG: [RenderSVG] and [RenderPNG] run the DOT source through
//     Graphviz (compiled to WebAssembly by go-graphviz, no system install
//     needed).
//   - JSON: [WriteJSON] and [ReadJSON] store the whole round, paths
//     included. ReadJSON validates what it reads.
//
// # Usage
//
//	dot := render.ToDOT(r, render.DOTOptions{Lane: 2})
//	svg, err := render.RenderSVG(ctx, dot)
//
//	f, _ := os.Create("round.json")
//	err = render.WriteJSON(r, f)
package render
