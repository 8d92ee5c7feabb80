package layout

import (
	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/ladder"
)

// Default layout proportions.
const (
	DefaultBlockRatio  = 3
	DefaultSpaceRatio  = 1
	DefaultLabelHeight = 3
)

// Options control the proportions of a [Grid].
type Options struct {
	BlockRatio  int // label box width, in layout units
	SpaceRatio  int // space between label boxes, in layout units
	LabelHeight int // rows taken by the name and result boxes, borders included
}

// DefaultOptions returns the proportions the terminal UI uses.
func DefaultOptions() Options {
	return Options{
		BlockRatio:  DefaultBlockRatio,
		SpaceRatio:  DefaultSpaceRatio,
		LabelHeight: DefaultLabelHeight,
	}
}

// Grid is a ladder placed on a Width x Height character canvas.
type Grid struct {
	Width, Height int
	Lanes, Rows   int

	LaneX []int // column of every lane
	RowY  []int // line of every rung row, indexed by row
	Top   int   // line of the virtual top row (-1)
	Bot   int   // line of the virtual bottom row (rows)

	NameBoxes   []ladder.Rect
	ResultBoxes []ladder.Rect

	// Coords locates every vertex (lane, row) for row in [-1, Rows].
	Coords ladder.CoordMap
}

// Compute lays out lanes x rows on a width x height canvas.
//
// The lane boxes come from [ColumnLayout]; each lane runs down the middle of
// its box. The body between the boxes is cut into rows+1 bands with
// [ladder.DistributeRows] and rung row r is drawn on the last line of band
// r, which keeps one band below the last rung free.
//
// The canvas must leave every band at least one line tall and at least one
// free column between neighbouring lanes; otherwise Compute returns an
// INVALID_LAYOUT error.
func Compute(lanes, rows, width, height int, opts Options) (*Grid, error) {
	if rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout needs at least one row, got %d", rows)
	}
	if opts.LabelHeight < 1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "label height must be positive, got %d", opts.LabelHeight)
	}
	pcts, err := ColumnLayout(lanes, opts.BlockRatio, opts.SpaceRatio)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		Width:  width,
		Height: height,
		Lanes:  lanes,
		Rows:   rows,
		Top:    opts.LabelHeight - 1,
		Bot:    height - opts.LabelHeight,
		Coords: make(ladder.CoordMap, lanes*(rows+2)),
	}

	body := g.Bot - g.Top - 1
	if body < rows+1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"canvas height %d is too small for %d rows", height, rows)
	}

	cols := split(pcts, width)
	for lane := range lanes {
		box := cols[2*lane+1]
		if box.size() < 1 {
			return nil, errors.New(errors.ErrCodeInvalidLayout,
				"canvas width %d is too small for %d lanes", width, lanes)
		}
		x := box.start + box.size()/2
		if lane > 0 && x-g.LaneX[lane-1] < 2 {
			return nil, errors.New(errors.ErrCodeInvalidLayout,
				"canvas width %d leaves no room for rungs between %d lanes", width, lanes)
		}
		g.LaneX = append(g.LaneX, x)
		g.NameBoxes = append(g.NameBoxes, ladder.Rect{X: box.start, Y: 0, W: box.size(), H: opts.LabelHeight})
		g.ResultBoxes = append(g.ResultBoxes, ladder.Rect{X: box.start, Y: g.Bot, W: box.size(), H: opts.LabelHeight})
	}

	y := g.Top
	for _, band := range ladder.DistributeRows(rows+1, body)[:rows] {
		y += band
		g.RowY = append(g.RowY, y)
	}

	for lane, x := range g.LaneX {
		g.Coords[ladder.Point{Lane: lane, Row: -1}] = ladder.Coord{X: x, Y: g.Top}
		g.Coords[ladder.Point{Lane: lane, Row: rows}] = ladder.Coord{X: x, Y: g.Bot}
		for row, y := range g.RowY {
			g.Coords[ladder.Point{Lane: lane, Row: row}] = ladder.Coord{X: x, Y: y}
		}
	}
	return g, nil
}

// Locate implements [ladder.Locator].
func (g *Grid) Locate(p ladder.Point) ladder.Coord { return g.Coords.Locate(p) }

// Rung returns the cells of the rung in gap at row, between the two lane
// lines.
func (g *Grid) Rung(gap, row int) ladder.Rect {
	x0, x1 := g.LaneX[gap], g.LaneX[gap+1]
	return ladder.Rect{X: x0 + 1, Y: g.RowY[row], W: x1 - x0 - 1, H: 1}
}

// Lane returns the cells of the lane line between the label boxes.
func (g *Grid) Lane(lane int) ladder.Rect {
	return ladder.Rect{X: g.LaneX[lane], Y: g.Top + 1, W: 1, H: g.Bot - g.Top - 1}
}
