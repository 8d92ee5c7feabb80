package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/ghostleg/pkg/ladder"
	"github.com/matzehuels/ghostleg/pkg/layout"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// inkKind selects the style a cell is rendered with.
type inkKind uint8

const (
	inkNone inkKind = iota
	inkLane
	inkRung
	inkPath
	inkLabel
	inkSelected
)

func (k inkKind) style() lipgloss.Style {
	switch k {
	case inkLane:
		return styleLane
	case inkRung:
		return styleRung
	case inkPath:
		return stylePath
	case inkLabel:
		return styleLabel
	case inkSelected:
		return styleSelected
	}
	return lipgloss.NewStyle()
}

// cell is one character position. A zero rune marks the right half of a
// wide character and renders as nothing.
type cell struct {
	r   rune
	ink inkKind
}

// canvas is a fixed-size character grid that the ladder is painted on.
// Writes outside the grid are dropped.
type canvas struct {
	width, height int
	cells         [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height, cells: make([][]cell, height)}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *canvas) set(x, y int, r rune, ink inkKind) {
	if c.in(x, y) {
		c.cells[y][x] = cell{r: r, ink: ink}
	}
}

// recolor changes the ink of a cell and keeps its character.
func (c *canvas) recolor(x, y int, ink inkKind) {
	if c.in(x, y) {
		c.cells[y][x].ink = ink
	}
}

func (c *canvas) fill(area ladder.Rect, r rune, ink inkKind) {
	for y := area.Y; y < area.Y+area.H; y++ {
		for x := area.X; x < area.X+area.W; x++ {
			c.set(x, y, r, ink)
		}
	}
}

// text writes s starting at x, wide characters taking two cells.
func (c *canvas) text(x, y int, s string, ink inkKind) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(x, y, r, ink)
		if w == 2 {
			c.set(x+1, y, 0, ink)
		}
		x += w
	}
}

// box draws a rounded border around area with label centered inside.
func (c *canvas) box(area ladder.Rect, label string, ink inkKind) {
	if area.Empty() {
		return
	}
	inner := area.W - 2
	mid := area.Y + area.H/2
	if area.W < 3 || area.H < 3 {
		label = runewidth.Truncate(label, area.W, "")
		c.text(area.X+(area.W-runewidth.StringWidth(label))/2, mid, label, ink)
		return
	}

	right, bottom := area.X+area.W-1, area.Y+area.H-1
	c.fill(ladder.Rect{X: area.X + 1, Y: area.Y, W: inner, H: 1}, '─', ink)
	c.fill(ladder.Rect{X: area.X + 1, Y: bottom, W: inner, H: 1}, '─', ink)
	c.fill(ladder.Rect{X: area.X, Y: area.Y + 1, W: 1, H: area.H - 2}, '│', ink)
	c.fill(ladder.Rect{X: right, Y: area.Y + 1, W: 1, H: area.H - 2}, '│', ink)
	c.set(area.X, area.Y, '╭', ink)
	c.set(right, area.Y, '╮', ink)
	c.set(area.X, bottom, '╰', ink)
	c.set(right, bottom, '╯', ink)

	label = runewidth.Truncate(label, inner, "…")
	c.text(area.X+1+(inner-runewidth.StringWidth(label))/2, mid, label, ink)
}

// String renders the canvas with lipgloss, one style run at a time.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		ink := inkNone
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(ink.style().Render(run.String()))
				run.Reset()
			}
		}
		for _, cl := range row {
			if cl.r == 0 {
				continue
			}
			if cl.ink != ink {
				flush()
				ink = cl.ink
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

// plain renders the canvas without styles.
func (c *canvas) plain() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			if cl.r != 0 {
				b.WriteRune(cl.r)
			}
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Ladder painting
// =============================================================================

// paintLadder draws the label boxes, lanes and rungs of r on g. The name box
// of selected is highlighted; pass -1 for none.
func (c *canvas) paintLadder(g *layout.Grid, r *round.Round, selected int) {
	for lane := range g.Lanes {
		c.fill(g.Lane(lane), '│', inkLane)

		ink := inkLabel
		if lane == selected {
			ink = inkSelected
		}
		c.box(g.NameBoxes[lane], r.Names[lane], ink)
		c.box(g.ResultBoxes[lane], r.Results[lane], inkLabel)
	}

	for gap, rows := range r.Rungs {
		for _, row := range rows {
			c.fill(g.Rung(gap, row), '─', inkRung)
			y := g.RowY[row]
			c.set(g.LaneX[gap], y, '├', inkLane)
			c.set(g.LaneX[gap+1], y, '┤', inkLane)
		}
	}
}

// paintStrokes draws animator output in the path color.
func (c *canvas) paintStrokes(strokes []ladder.Stroke) {
	for _, s := range strokes {
		r := '─'
		if s.Direction == ladder.Down {
			r = '│'
		}
		c.fill(s.Area, r, inkPath)
	}
}

// paintReached recolors the path vertices before index, which strokes never
// cover, and the result box once the whole path is drawn.
func (c *canvas) paintReached(g *layout.Grid, path ladder.Path, index int) {
	for _, p := range path[:min(index, len(path))] {
		at := g.Locate(p)
		c.recolor(at.X, at.Y, inkPath)
	}
	if index >= len(path) && len(path) > 0 {
		box := g.ResultBoxes[path.Final()]
		for y := box.Y; y < box.Y+box.H; y++ {
			for x := box.X; x < box.X+box.W; x++ {
				c.recolor(x, y, inkPath)
			}
		}
	}
}

// renderLadder paints r on g with lane traced as far as a has drawn. a may
// be nil.
func renderLadder(g *layout.Grid, r *round.Round, lane int, a *ladder.Animator) *canvas {
	c := newCanvas(g.Width, g.Height)
	c.paintLadder(g, r, lane)
	if a != nil {
		path, _ := r.Path(lane)
		c.paintStrokes(a.Strokes())
		c.paintReached(g, path, a.Index())
	}
	return c
}
