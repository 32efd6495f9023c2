package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultTolerance is the hit-test tolerance used by renderers: half a
// lane on either side of the commit's column.
const DefaultTolerance = 0.5

// VisibleCommits returns the commits whose row falls in the inclusive
// range [start, end], clamped to the layout.
func (g *Graph) VisibleCommits(start, end int) []Commit {
	if start < 0 {
		start = 0
	}
	if end > g.TotalRows-1 {
		end = g.TotalRows - 1
	}
	if start > end {
		return nil
	}
	return g.Commits[start : end+1]
}

// VisibleEdges returns the edges whose row span overlaps the inclusive
// range [start, end]. An edge's span covers both endpoints, so edges that
// merely pass through the viewport are included; edges into unloaded
// history span down to their ToRow of -1.
func (g *Graph) VisibleEdges(start, end int) []Edge {
	var visible []Edge
	for _, e := range g.Edges {
		lo, hi := minmax(e.FromRow, e.ToRow)
		if lo <= end && hi >= start {
			visible = append(visible, e)
		}
	}
	return visible
}

// Box is an inclusive rectangle on the visual grid.
type Box struct {
	MinRow, MaxRow   int
	MinLane, MaxLane int
}

// BoundingBox returns the componentwise extent of the given commits and
// edges. An empty commit slice yields the zero box regardless of edges.
func BoundingBox(commits []Commit, edges []Edge) Box {
	if len(commits) == 0 {
		return Box{}
	}

	b := Box{
		MinRow:  commits[0].Row,
		MaxRow:  commits[0].Row,
		MinLane: commits[0].Lane,
		MaxLane: commits[0].Lane,
	}
	for _, c := range commits[1:] {
		b.growRow(c.Row)
		b.growLane(c.Lane)
	}
	for _, e := range edges {
		b.growRow(e.FromRow)
		b.growRow(e.ToRow)
		b.growLane(e.FromLane)
		b.growLane(e.ToLane)
	}
	return b
}

func (b *Box) growRow(row int) {
	if row < b.MinRow {
		b.MinRow = row
	}
	if row > b.MaxRow {
		b.MaxRow = row
	}
}

func (b *Box) growLane(lane int) {
	if lane < b.MinLane {
		b.MinLane = lane
	}
	if lane > b.MaxLane {
		b.MaxLane = lane
	}
}

// CommitAtPosition hit-tests a (row, lane) coordinate, typically from a
// pointer event already converted to grid space. The commit on that row is
// returned iff its lane is within tolerance of the queried lane.
func (g *Graph) CommitAtPosition(row int, lane, tolerance float64) (Commit, bool) {
	c, ok := g.CommitAtRow(row)
	if !ok {
		return Commit{}, false
	}
	if math.Abs(float64(c.Lane)-lane) > tolerance {
		return Commit{}, false
	}
	return c, true
}

// Point is a vertex of an edge path in grid coordinates.
type Point struct {
	Row  int
	Lane int
}

// EdgePath returns the polyline for an edge in grid coordinates.
//
// Same-lane edges are a straight 2-point segment. Merge edges route as a
// 3-point L: horizontal along the merge commit's row, then vertical down
// the parent's lane. Fork edges route as a 4-point Z that switches lanes
// halfway between the rows.
func EdgePath(e Edge) []Point {
	from := Point{Row: e.FromRow, Lane: e.FromLane}
	to := Point{Row: e.ToRow, Lane: e.ToLane}

	switch {
	case e.FromLane == e.ToLane:
		return []Point{from, to}
	case e.Type == EdgeMerge:
		return []Point{from, {Row: e.FromRow, Lane: e.ToLane}, to}
	default:
		mid := int(math.Floor(float64(e.FromRow+e.ToRow) / 2))
		return []Point{
			from,
			{Row: mid, Lane: e.FromLane},
			{Row: mid, Lane: e.ToLane},
			to,
		}
	}
}

// EdgePathSVG renders a polyline as an SVG path string.
//
// Grid coordinates map to the centers of their cells: lane l becomes
// x = l*laneWidth + laneWidth/2 and row r becomes y = r*rowHeight +
// rowHeight/2. With useCurves and at least three points, interior corners
// are smoothed with quadratic segments (the corner is the control point,
// the midpoint to the next vertex the anchor); the final segment is always
// a straight line.
func EdgePathSVG(points []Point, rowHeight, laneWidth float64, useCurves bool) string {
	if len(points) == 0 {
		return ""
	}

	x := func(p Point) float64 { return float64(p.Lane)*laneWidth + laneWidth/2 }
	y := func(p Point) float64 { return float64(p.Row)*rowHeight + rowHeight/2 }

	var b strings.Builder
	fmt.Fprintf(&b, "M %s %s", fmtCoord(x(points[0])), fmtCoord(y(points[0])))

	if !useCurves || len(points) < 3 {
		for _, p := range points[1:] {
			fmt.Fprintf(&b, " L %s %s", fmtCoord(x(p)), fmtCoord(y(p)))
		}
		return b.String()
	}

	for i := 1; i < len(points)-1; i++ {
		ctrl, next := points[i], points[i+1]
		midX := (x(ctrl) + x(next)) / 2
		midY := (y(ctrl) + y(next)) / 2
		fmt.Fprintf(&b, " Q %s %s %s %s",
			fmtCoord(x(ctrl)), fmtCoord(y(ctrl)), fmtCoord(midX), fmtCoord(midY))
	}
	last := points[len(points)-1]
	fmt.Fprintf(&b, " L %s %s", fmtCoord(x(last)), fmtCoord(y(last)))
	return b.String()
}

// fmtCoord formats an SVG coordinate without trailing zeros.
func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func minmax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
