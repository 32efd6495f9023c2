// Package svg renders a visual graph as a standalone SVG document.
//
// Edge geometry comes straight from [layout.EdgePath] and
// [layout.EdgePathSVG]; this package only wraps the path strings in an
// <svg> element and adds commit markers and ref labels.
package svg

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/matzehuels/gitlanes/pkg/layout"
)

// Options configures SVG output. The zero value is usable.
type Options struct {
	RowHeight float64 // vertical cell size; default 28
	LaneWidth float64 // horizontal cell size; default 24
	UseCurves bool    // smooth lane changes with quadratic segments
	ShowRefs  bool    // draw branch and tag labels next to commits
}

// withDefaults fills in unset dimensions.
func (o Options) withDefaults() Options {
	if o.RowHeight <= 0 {
		o.RowHeight = 28
	}
	if o.LaneWidth <= 0 {
		o.LaneWidth = 24
	}
	return o
}

// laneColors cycle across lanes so parallel branches stay visually
// distinct. The palette matches the terminal renderer's ANSI choices.
var laneColors = []string{
	"#0db9d7", // cyan
	"#9ece6a", // green
	"#e0af68", // amber
	"#f7768e", // red
	"#7aa2f7", // blue
	"#bb9af7", // purple
}

func laneColor(lane int) string {
	return laneColors[lane%len(laneColors)]
}

// Render draws the whole visual graph into an SVG document.
func Render(g *layout.Graph, opts Options) []byte {
	opts = opts.withDefaults()

	width := float64(g.TotalLanes) * opts.LaneWidth
	if opts.ShowRefs {
		width += 240 // label gutter
	}
	height := float64(g.TotalRows) * opts.RowHeight

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height)

	// Edges first so commit markers paint over them.
	for _, e := range g.Edges {
		path := layout.EdgePathSVG(layout.EdgePath(e), opts.RowHeight, opts.LaneWidth, opts.UseCurves)
		fmt.Fprintf(&buf,
			`  <path d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			path, laneColor(e.ToLane))
	}

	for _, c := range g.Commits {
		cx := float64(c.Lane)*opts.LaneWidth + opts.LaneWidth/2
		cy := float64(c.Row)*opts.RowHeight + opts.RowHeight/2

		radius, fill := 4.0, laneColor(c.Lane)
		if c.IsMerge {
			radius = 3.0
		}
		if c.IsHead {
			radius = 5.0
		}
		fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", cx, cy, radius, fill)

		if opts.ShowRefs && len(c.Refs) > 0 {
			labels := make([]string, len(c.Refs))
			for i, r := range c.Refs {
				labels[i] = r.Name
			}
			x := float64(g.TotalLanes)*opts.LaneWidth + 8
			fmt.Fprintf(&buf,
				`  <text x="%.1f" y="%.1f" font-family="monospace" font-size="11" fill="#c0caf5">%s</text>`+"\n",
				x, cy+4, html.EscapeString(strings.Join(labels, ", ")))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
