package ladder

import "fmt"

// DistributeRows splits rowSpan into rungCount parts that differ by at most
// one. Every part is rowSpan/rungCount, and the rowSpan%rungCount parts that
// get one extra row are spread at a fixed stride starting from index 0.
//
// The spread is a heuristic, not the most even placement possible: when the
// remainder does not divide rungCount the extra rows cluster toward the
// front. It panics if rungCount is less than 1.
//
// DistributeRows(11, 30) has 8 extra rows at stride 1, so it returns
// [3 3 3 3 3 3 3 3 2 2 2].
func DistributeRows(rungCount, rowSpan int) []int {
	if rungCount < 1 {
		panic(fmt.Sprintf("ladder: DistributeRows rungCount %d < 1", rungCount))
	}

	base := rowSpan / rungCount
	extra := rowSpan % rungCount

	out := make([]int, rungCount)
	for i := range out {
		out[i] = base
	}
	if extra == 0 {
		return out
	}

	stride := rungCount / extra
	for i, idx := 0, 0; i < extra && idx < rungCount; i, idx = i+1, idx+stride {
		out[idx]++
	}
	return out
}
