package ladder

import "fmt"

// Coord is a position in the presentation layer's coordinate space, for
// example a terminal cell. Y grows downward.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned area in presentation coordinates.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Direction is the direction a path segment is drawn in.
type Direction int

const (
	Down  Direction = iota // same lane, toward the bottom
	Left                   // across a rung to the lower-numbered lane
	Right                  // across a rung to the higher-numbered lane
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Locator maps ladder vertices to presentation coordinates. It must know
// every vertex on the paths it is asked about, plus the virtual top vertex
// (lane, -1) of every starting lane.
type Locator interface {
	Locate(p Point) Coord
}

// CoordMap is a Locator backed by a map. Locate panics on an unknown
// vertex, since that means the presentation layer never placed it.
type CoordMap map[Point]Coord

// Locate returns the coordinate of p.
func (m CoordMap) Locate(p Point) Coord {
	c, ok := m[p]
	if !ok {
		panic(fmt.Sprintf("ladder: no coordinate for vertex %s", p))
	}
	return c
}

// StepResult is the outcome of one [Step] call.
type StepResult struct {
	Remaining int       // budget left after drawing Area
	Area      Rect      // cells to paint for this segment
	Direction Direction // direction the segment runs in
	Next      int       // path index to pass to the following call
}

// Step draws as much of segment index of path as budget allows.
//
// The segment runs from path[index-1] to path[index]; for index 0 it starts
// at the virtual top vertex (startLane, -1). Its drawable length is the
// coordinate distance between both ends minus one, so the end markers are
// never overdrawn. Step spends min(budget, length) units, and advances Next
// past the segment only if budget is left over afterwards.
//
// A caller replays a whole frame by starting at index 0 with the frame's
// budget and calling Step while Remaining > 0 and Next < len(path).
func Step(loc Locator, path Path, budget, index, startLane int) StepResult {
	seg := locateSegment(loc, path, index, startLane)
	length := max(0, min(budget, seg.length))

	res := StepResult{
		Remaining: budget - length,
		Area:      seg.area(0, length),
		Direction: seg.dir,
		Next:      index,
	}
	if res.Remaining > 0 {
		res.Next = index + 1
	}
	return res
}

type segment struct {
	from   Coord
	dir    Direction
	length int
}

func locateSegment(loc Locator, path Path, index, startLane int) segment {
	start := Point{Lane: startLane, Row: -1}
	if index > 0 {
		start = path[index-1]
	}
	from, to := loc.Locate(start), loc.Locate(path[index])

	switch {
	case from.X == to.X:
		return segment{from: from, dir: Down, length: to.Y - from.Y - 1}
	case from.X < to.X:
		return segment{from: from, dir: Right, length: to.X - from.X - 1}
	default:
		return segment{from: from, dir: Left, length: from.X - to.X - 1}
	}
}

// area returns the n cells that follow the first offset drawable cells.
func (s segment) area(offset, n int) Rect {
	switch s.dir {
	case Down:
		return Rect{X: s.from.X, Y: s.from.Y + 1 + offset, W: 1, H: n}
	case Right:
		return Rect{X: s.from.X + 1 + offset, Y: s.from.Y, W: n, H: 1}
	default:
		return Rect{X: s.from.X - offset - n, Y: s.from.Y, W: n, H: 1}
	}
}

// Stroke is one painted piece of a path.
type Stroke struct {
	Area      Rect
	Direction Direction
}

// Animator reveals a path incrementally across frames. Unlike [Step], which
// is replayed from the start with a growing budget, an Animator remembers
// how far into the current segment it has drawn, so each frame only pays
// for new cells.
type Animator struct {
	loc     Locator
	path    Path
	start   int
	index   int
	offset  int
	strokes []Stroke
}

// NewAnimator returns an Animator for path, traced from startLane.
func NewAnimator(loc Locator, path Path, startLane int) *Animator {
	return &Animator{loc: loc, path: path, start: startLane}
}

// Advance draws up to budget more units and returns the strokes added.
// A segment is finished as soon as its last cell is drawn, even when that
// exhausts the budget.
func (a *Animator) Advance(budget int) []Stroke {
	first := len(a.strokes)
	for budget > 0 && a.index < len(a.path) {
		seg := locateSegment(a.loc, a.path, a.index, a.start)
		n := max(0, min(budget, seg.length-a.offset))
		if n > 0 {
			a.strokes = append(a.strokes, Stroke{Area: seg.area(a.offset, n), Direction: seg.dir})
		}
		budget -= n
		a.offset += n
		if a.offset >= seg.length {
			a.index++
			a.offset = 0
		}
	}
	return a.strokes[first:]
}

// Index returns the path index of the segment being drawn.
func (a *Animator) Index() int { return a.index }

// Strokes returns every stroke drawn since the last Reset.
func (a *Animator) Strokes() []Stroke { return a.strokes }

// Done reports whether the whole path has been drawn.
func (a *Animator) Done() bool { return a.index >= len(a.path) }

// Reset rewinds the Animator to the top of the path.
func (a *Animator) Reset() {
	a.index, a.offset = 0, 0
	a.strokes = nil
}
