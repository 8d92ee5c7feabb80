// Package layout places a ladder on a character grid.
//
// The ladder engine in [github.com/matzehuels/ghostleg/pkg/ladder] works in
// abstract (lane, row) vertices. Before a path can be drawn, every vertex
// needs a cell. This package computes those cells for a canvas of a given
// size:
//
//   - [ColumnLayout] splits the width into percentages: a margin, a label
//     box per lane with a space between neighbours, and a closing margin.
//   - [Compute] converts the percentages to columns, centres each lane in its
//     box, spreads the rung rows over the body with
//     [ladder.DistributeRows], and returns a [Grid] whose Coords satisfy
//     [ladder.Locator].
//
// Name boxes sit above the body and result boxes below it. The virtual
// vertex (lane, -1) lies on the bottom border of the name box and
// (lane, rows) on the top border of the result box, so path animation
// starts and ends at the labels.
package layout
