package render

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/matzehuels/ghostleg/pkg/ladder"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// Spacing of the pinned layout, in points.
const (
	laneGap  = 90
	rowGap   = 28
	labelGap = 36
)

// Colors used by the DOT output.
const (
	laneColor  = "#5f87d7"
	rungColor  = "#ffd700"
	pathColor  = "#d75f5f"
	labelColor = "#303030"
)

// DOTOptions configures DOT output.
type DOTOptions struct {
	// Lane highlights the path starting at this lane. Negative values
	// highlight nothing.
	Lane int
}

// NoLane disables path highlighting.
const NoLane = -1

// ToDOT converts a round to Graphviz DOT. Every vertex (lane, row) for row
// in [-1, rows] becomes an invisible point pinned with pos="x,y!"; lanes and
// rungs are edges between them. Names sit above the ladder, results below.
//
// The output is meant for the neato engine, which honours pinned positions.
func ToDOT(r *round.Round, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=point, width=0.01, height=0.01, label=\"\"];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	lanes := r.Lanes()
	for lane := range lanes {
		x := lane * laneGap
		fmt.Fprintf(&buf, "  %q [shape=box, style=\"rounded,filled\", fillcolor=white, color=%q, fontsize=14, width=0.9, height=0.4, label=%s, pos=\"%d,%d!\"];\n",
			labelID("name", lane), labelColor, dotString(r.Names[lane]), x, labelGap)
		fmt.Fprintf(&buf, "  %q [shape=box, style=\"rounded,filled\", fillcolor=white, color=%q, fontsize=14, width=0.9, height=0.4, label=%s, pos=\"%d,%d!\"];\n",
			labelID("result", lane), labelColor, dotString(r.Results[lane]), x, -(r.Rows+1)*rowGap-labelGap)
		for row := -1; row <= r.Rows; row++ {
			fmt.Fprintf(&buf, "  %q [pos=\"%d,%d!\"];\n", vertexID(lane, row), x, -(row+1)*rowGap)
		}
	}

	buf.WriteString("\n")
	onPath := pathEdges(r, opts.Lane)
	for lane := range lanes {
		fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", labelID("name", lane), vertexID(lane, -1), laneColor)
		for row := -1; row < r.Rows; row++ {
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", vertexID(lane, row), vertexID(lane, row+1),
				edgeAttrs(onPath, edge{ladder.Point{Lane: lane, Row: row}, ladder.Point{Lane: lane, Row: row + 1}}, laneColor))
		}
		fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", vertexID(lane, r.Rows), labelID("result", lane), laneColor)
	}

	buf.WriteString("\n")
	for gap, rows := range r.Rungs {
		for _, row := range rows {
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", vertexID(gap, row), vertexID(gap+1, row),
				edgeAttrs(onPath, edge{ladder.Point{Lane: gap, Row: row}, ladder.Point{Lane: gap + 1, Row: row}}, rungColor))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotString quotes s as a DOT string. Only '"' and '\\' are escaped; a
// backslash would otherwise start a Graphviz escape such as \l or \N.
// Control characters become spaces.
func dotString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func vertexID(lane, row int) string {
	return fmt.Sprintf("v%d_%d", lane, row)
}

func labelID(kind string, lane int) string {
	return fmt.Sprintf("%s%d", kind, lane)
}

// edge is an undirected unit edge of the ladder graph, stored with the
// smaller endpoint first.
type edge struct{ a, b ladder.Point }

func newEdge(a, b ladder.Point) edge {
	if b.Lane < a.Lane || (b.Lane == a.Lane && b.Row < a.Row) {
		a, b = b, a
	}
	return edge{a, b}
}

// pathEdges returns the unit edges walked by the path of lane, or nil when
// lane is out of range.
func pathEdges(r *round.Round, lane int) map[edge]bool {
	path, err := r.Path(lane)
	if err != nil {
		return nil
	}

	out := make(map[edge]bool)
	cur := ladder.Point{Lane: lane, Row: -1}
	for _, next := range path {
		if next.Lane != cur.Lane {
			out[newEdge(cur, next)] = true
		} else {
			for row := cur.Row; row < next.Row; row++ {
				out[newEdge(ladder.Point{Lane: cur.Lane, Row: row}, ladder.Point{Lane: cur.Lane, Row: row + 1})] = true
			}
		}
		cur = next
	}
	return out
}

func edgeAttrs(onPath map[edge]bool, e edge, color string) string {
	if onPath[newEdge(e.a, e.b)] {
		return fmt.Sprintf("color=%q, penwidth=4", pathColor)
	}
	return fmt.Sprintf("color=%q", color)
}
