package ladder

import (
	"fmt"
	"slices"
)

// Bridge is a rung seen from one lane: the row it sits on and the lane it
// leads to.
type Bridge struct {
	Row      int `json:"row"`
	Neighbor int `json:"neighbor"`
}

// BridgePoints returns every rung touching lane, ordered by row.
//
// Rungs in gap lane-1 lead to Neighbor lane-1 and rungs in gap lane lead to
// Neighbor lane+1. Lane 0 has no left gap and the last lane has no right
// gap. Two bridges never share a row because adjacent gaps never share a
// row.
//
// BridgePoints panics if lane is outside [0, m.Lanes()).
func BridgePoints(lane int, m RungMap) []Bridge {
	checkLane(lane, m)

	var out []Bridge
	if lane > 0 {
		for _, row := range m[lane-1] {
			out = append(out, Bridge{Row: row, Neighbor: lane - 1})
		}
	}
	if lane < len(m) {
		for _, row := range m[lane] {
			out = append(out, Bridge{Row: row, Neighbor: lane + 1})
		}
	}
	slices.SortFunc(out, func(a, b Bridge) int { return a.Row - b.Row })
	return out
}

func checkLane(lane int, m RungMap) {
	if lane < 0 || lane >= m.Lanes() {
		panic(fmt.Sprintf("ladder: lane %d out of range [0, %d)", lane, m.Lanes()))
	}
}
