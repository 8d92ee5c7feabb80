package ladder

import (
	"fmt"
	"slices"
)

// Point is a vertex of the ladder graph.
type Point struct {
	Lane int `json:"lane"`
	Row  int `json:"row"`
}

// String formats p as "(lane, row)".
func (p Point) String() string { return fmt.Sprintf("(%d, %d)", p.Lane, p.Row) }

// Path is the sequence of vertices a token visits from the top of one lane
// to the bottom of another. Only turning points are recorded: for each rung
// taken, the vertex before and after the crossing, followed by the bottom
// vertex (final lane, rows).
type Path []Point

// Final returns the lane the path ends on.
func (p Path) Final() int { return p[len(p)-1].Lane }

// TracePath walks the ladder from the top of lane and returns its path.
//
// At each row it asks [BridgePoints] whether a rung leaves the current lane
// there. If one does, the path records both ends of the rung and continues
// one row lower on the neighbouring lane. When the walk reaches row rows it
// records the terminal vertex and stops. The result depends only on its
// arguments.
//
// TracePath panics if lane is out of range.
func TracePath(lane int, m RungMap, rows int) Path {
	checkLane(lane, m)

	var path Path
	cur := Point{Lane: lane, Row: 0}
	for {
		if cur.Row >= rows {
			return append(path, Point{Lane: cur.Lane, Row: rows})
		}
		if b, ok := bridgeAt(BridgePoints(cur.Lane, m), cur.Row); ok {
			path = append(path, cur, Point{Lane: b.Neighbor, Row: cur.Row})
			cur = Point{Lane: b.Neighbor, Row: cur.Row + 1}
			continue
		}
		cur.Row++
	}
}

func bridgeAt(bridges []Bridge, row int) (Bridge, bool) {
	i, found := slices.BinarySearchFunc(bridges, row, func(b Bridge, r int) int { return b.Row - r })
	if !found {
		return Bridge{}, false
	}
	return bridges[i], true
}

// Tracer traces paths over one ladder using per-lane rung tables built once
// at construction. Its paths are identical to those of [TracePath].
type Tracer struct {
	rows    int
	m       RungMap
	bridges [][]Bridge // lane -> BridgePoints(lane)
}

// NewTracer precomputes the bridge table for m.
func NewTracer(m RungMap, rows int) *Tracer {
	t := &Tracer{rows: rows, m: m, bridges: make([][]Bridge, m.Lanes())}
	for lane := range t.bridges {
		t.bridges[lane] = BridgePoints(lane, m)
	}
	return t
}

// Trace returns the path starting at lane. It panics if lane is out of range.
func (t *Tracer) Trace(lane int) Path {
	checkLane(lane, t.m)

	var path Path
	cur := lane
	for _, b := range t.walk(lane) {
		path = append(path, Point{Lane: cur, Row: b.Row}, Point{Lane: b.Neighbor, Row: b.Row})
		cur = b.Neighbor
	}
	return append(path, Point{Lane: cur, Row: t.rows})
}

// walk returns the rungs taken from lane, in order.
func (t *Tracer) walk(lane int) []Bridge {
	var taken []Bridge
	row := 0
	for row < t.rows {
		next, ok := t.nextBridge(lane, row)
		if !ok || next.Row >= t.rows {
			break
		}
		taken = append(taken, next)
		lane, row = next.Neighbor, next.Row+1
	}
	return taken
}

// nextBridge returns the first bridge of lane at or below row.
func (t *Tracer) nextBridge(lane, row int) (Bridge, bool) {
	bs := t.bridges[lane]
	i, _ := slices.BinarySearchFunc(bs, row, func(b Bridge, r int) int { return b.Row - r })
	if i == len(bs) {
		return Bridge{}, false
	}
	return bs[i], true
}

// TraceAll returns the path of every lane, indexed by starting lane.
func (t *Tracer) TraceAll() []Path {
	paths := make([]Path, len(t.bridges))
	for lane := range paths {
		paths[lane] = t.Trace(lane)
	}
	return paths
}

// Finals returns the final lane of every path, indexed by starting lane.
func Finals(paths []Path) []int {
	out := make([]int, len(paths))
	for i, p := range paths {
		out[i] = p.Final()
	}
	return out
}

// IsPermutation reports whether finals holds every value of [0, len(finals))
// exactly once.
func IsPermutation(finals []int) bool {
	seen := make([]bool, len(finals))
	for _, f := range finals {
		if f < 0 || f >= len(finals) || seen[f] {
			return false
		}
		seen[f] = true
	}
	return true
}
