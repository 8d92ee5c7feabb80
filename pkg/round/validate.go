package round

import (
	"slices"

	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/ladder"
)

// Validate checks a round that did not come from [New], such as one read
// from a store or a JSON file. It returns an INVALID_ROUND error naming the
// first broken invariant.
func (r *Round) Validate() error {
	lanes := r.Lanes()
	switch {
	case r.ID == "":
		return invalid("missing id")
	case lanes < MinLanes:
		return invalid("%d lanes, need at least %d", lanes, MinLanes)
	case lanes > LanesLimit:
		return invalid("%d lanes, at most %d allowed", lanes, LanesLimit)
	case len(r.Results) != lanes:
		return invalid("%d names but %d results", lanes, len(r.Results))
	case r.Rows < 1 || r.Rows > RowsLimit:
		return invalid("%d rows outside [1, %d]", r.Rows, RowsLimit)
	case len(r.Rungs) != lanes-1:
		return invalid("%d gaps for %d lanes", len(r.Rungs), lanes)
	}

	for gap, rows := range r.Rungs {
		for i, row := range rows {
			if row < 0 || row >= r.Rows {
				return invalid("gap %d: row %d outside [0, %d)", gap, row, r.Rows)
			}
			if i > 0 && rows[i-1] >= row {
				return invalid("gap %d: rows not strictly ascending", gap)
			}
			if gap > 0 {
				if _, found := slices.BinarySearch(r.Rungs[gap-1], row); found {
					return invalid("gaps %d and %d share row %d", gap-1, gap, row)
				}
			}
		}
	}

	if len(r.Paths) != lanes || len(r.Finals) != lanes {
		return invalid("%d paths and %d finals for %d lanes", len(r.Paths), len(r.Finals), lanes)
	}
	tr := ladder.NewTracer(r.Rungs, r.Rows)
	for lane := range lanes {
		if !slices.Equal(r.Paths[lane], tr.Trace(lane)) {
			return invalid("path of lane %d does not follow the rungs", lane)
		}
		if r.Finals[lane] != r.Paths[lane].Final() {
			return invalid("final of lane %d does not match its path", lane)
		}
	}
	if !ladder.IsPermutation(r.Finals) {
		return invalid("finals %v are not a permutation", r.Finals)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidRound, "invalid round: "+format, args...)
}
