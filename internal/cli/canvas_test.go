package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/ghostleg/pkg/ladder"
	"github.com/matzehuels/ghostleg/pkg/layout"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// twoLaneRound is a round with one rung between two lanes, so both players
// swap sides.
func twoLaneRound() *round.Round {
	rungs := ladder.RungMap{{0}}
	paths := ladder.NewTracer(rungs, 1).TraceAll()
	return &round.Round{
		ID:      "5b0e8a55-0a43-4b44-9b43-3f7f2f0f9a11",
		Names:   []string{"ann", "bob"},
		Results: []string{"tea", "pie"},
		Rows:    1,
		Rungs:   rungs,
		Paths:   paths,
		Finals:  ladder.Finals(paths),
	}
}

func TestCanvasBox(t *testing.T) {
	c := newCanvas(10, 3)
	c.box(ladder.Rect{X: 1, Y: 0, W: 8, H: 3}, "ann", inkLabel)

	want := strings.Join([]string{
		" ╭──────╮",
		" │ ann  │",
		" ╰──────╯",
	}, "\n")
	if got := c.plain(); got != want {
		t.Errorf("box:\n%s\nwant:\n%s", got, want)
	}
}

func TestCanvasBoxTruncates(t *testing.T) {
	c := newCanvas(6, 3)
	c.box(ladder.Rect{X: 0, Y: 0, W: 6, H: 3}, "alexander", inkLabel)

	if got := strings.Split(c.plain(), "\n")[1]; got != "│ale…│" {
		t.Errorf("label line = %q, want %q", got, "│ale…│")
	}
}

func TestCanvasWideText(t *testing.T) {
	c := newCanvas(6, 1)
	c.text(0, 0, "名前x", inkLabel)

	if got := c.plain(); got != "名前x" {
		t.Errorf("plain() = %q, want %q", got, "名前x")
	}
	if c.cells[0][1].r != 0 || c.cells[0][4].r != 'x' {
		t.Errorf("wide runes should take two cells: %+v", c.cells[0][:5])
	}
}

func TestCanvasClipsOutside(t *testing.T) {
	c := newCanvas(3, 2)
	c.fill(ladder.Rect{X: -2, Y: -1, W: 10, H: 10}, '#', inkPath)
	if got := c.plain(); got != "###\n###" {
		t.Errorf("plain() = %q", got)
	}
}

func TestPaintLadder(t *testing.T) {
	r := twoLaneRound()
	g, err := layout.Compute(2, 1, 20, 9, layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	lines := strings.Split(renderLadder(g, r, 0, nil).plain(), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	if !strings.Contains(lines[1], "ann") || !strings.Contains(lines[1], "bob") {
		t.Errorf("name line = %q", lines[1])
	}
	if !strings.Contains(lines[g.Bot+1], "tea") || !strings.Contains(lines[g.Bot+1], "pie") {
		t.Errorf("result line = %q", lines[g.Bot+1])
	}

	x0, x1 := g.LaneX[0], g.LaneX[1]
	rung := []rune(lines[g.RowY[0]])
	if rung[x0] != '├' || rung[x1] != '┤' {
		t.Errorf("rung line = %q, want junctions at %d and %d", lines[g.RowY[0]], x0, x1)
	}
	for x := x0 + 1; x < x1; x++ {
		if rung[x] != '─' {
			t.Errorf("rung line = %q, want rung at column %d", lines[g.RowY[0]], x)
		}
	}
	for y := g.Top + 1; y < g.Bot; y++ {
		if y == g.RowY[0] {
			continue
		}
		if line := []rune(lines[y]); line[x0] != '│' || line[x1] != '│' {
			t.Errorf("line %d = %q, want lanes at %d and %d", y, lines[y], x0, x1)
		}
	}
}

func TestRenderLadderTrace(t *testing.T) {
	r := twoLaneRound()
	g, err := layout.Compute(2, 1, 20, 9, layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	path, _ := r.Path(0)
	a := ladder.NewAnimator(g, path, 0)
	a.Advance(1000)

	c := renderLadder(g, r, 0, a)
	for _, s := range a.Strokes() {
		for y := s.Area.Y; y < s.Area.Y+s.Area.H; y++ {
			for x := s.Area.X; x < s.Area.X+s.Area.W; x++ {
				if c.cells[y][x].ink != inkPath {
					t.Errorf("cell (%d, %d) ink = %d, want path", x, y, c.cells[y][x].ink)
				}
			}
		}
	}
	for _, p := range path {
		at := g.Locate(p)
		if c.cells[at.Y][at.X].ink != inkPath {
			t.Errorf("vertex %v not painted", p)
		}
	}

	box := g.ResultBoxes[path.Final()]
	if c.cells[box.Y+1][box.X+1].ink != inkPath {
		t.Error("result box of the final lane should be highlighted")
	}
	other := g.ResultBoxes[1-path.Final()]
	if c.cells[other.Y+1][other.X+1].ink == inkPath {
		t.Error("result box of the other lane should not be highlighted")
	}
}
