package layout

import (
	"github.com/matzehuels/ghostleg/pkg/errors"
)

// ColumnLayout splits 100 percent of the canvas width into 2*lanes+1
// columns: [leftMargin, block, space, block, ..., space, block, rightMargin].
//
// One unit is 100 / (lanes*blockRatio + (lanes-1)*spaceRatio) percent,
// rounded down. Blocks are blockRatio units wide, spaces spaceRatio units,
// and whatever the rounding leaves over is split between both margins with
// the odd percent going right. The columns always sum to 100.
//
// A unit of zero percent means the lanes cannot fit and is reported as an
// INVALID_LAYOUT error, as are non-positive lane counts or ratios.
func ColumnLayout(lanes, blockRatio, spaceRatio int) ([]int, error) {
	if lanes < 1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout needs at least one lane, got %d", lanes)
	}
	if blockRatio < 1 || spaceRatio < 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"invalid ratios: block %d, space %d", blockRatio, spaceRatio)
	}

	total := lanes*blockRatio + (lanes-1)*spaceRatio
	unit := 100 / total
	if unit == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"min unit error: %d lanes with block ratio %d and space ratio %d need %d units",
			lanes, blockRatio, spaceRatio, total)
	}

	rest := 100 - unit*total
	left := rest / 2
	block, space := blockRatio*unit, spaceRatio*unit

	cols := make([]int, 0, 2*lanes+1)
	cols = append(cols, left)
	for i := range lanes {
		cols = append(cols, block)
		if i < lanes-1 {
			cols = append(cols, space)
		}
	}
	return append(cols, rest-left), nil
}

// split converts percentages to column widths of a span of width cells.
// Boundaries are rounded down from the cumulative percentage, so the widths
// always add up to width.
func split(pcts []int, width int) []span {
	out := make([]span, len(pcts))
	acc, start := 0, 0
	for i, p := range pcts {
		acc += p
		end := acc * width / 100
		out[i] = span{start: start, end: end}
		start = end
	}
	return out
}

type span struct{ start, end int }

func (s span) size() int { return s.end - s.start }
