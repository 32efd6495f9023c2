// Package nodelink renders the commit DAG as a classic node-link diagram.
//
// This is the alternative to the lane layout for audiences that prefer
// Graphviz's hierarchical drawings: commits appear as boxes connected by
// parent arrows, with merge commits visually distinguished. Rendering
// uses [github.com/goccy/go-graphviz] in-process; no dot binary is
// required.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gitlanes/pkg/layout"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes row and lane coordinates in node labels.
	// When false, only the short hash and refs are shown.
	Detailed bool
}

// ToDOT converts a visual graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Merge commits are drawn with a doubled outline, the HEAD commit gets a
// bold border, and branch tips carry their ref names in the label.
func ToDOT(g *layout.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph history {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=monospace, fontsize=11];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, c := range g.Commits {
		label := fmtLabel(c, opts.Detailed)
		attrs := fmtAttrs(c, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", c.Hash.Short(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := ""
		if e.Type == layout.EdgeMerge {
			attrs = " [style=dashed]"
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.FromHash.Short(), e.ToHash.Short(), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c layout.Commit, detailed bool) string {
	parts := []string{c.Hash.Short()}
	for _, r := range c.Refs {
		parts = append(parts, r.Name)
	}
	if detailed {
		parts = append(parts, fmt.Sprintf("row %d, lane %d", c.Row, c.Lane))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(c layout.Commit, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c.IsMerge {
		attrs = append(attrs, "peripheries=2")
	}
	if c.IsHead {
		attrs = append(attrs, "penwidth=2")
	}
	if c.IsBranchTip {
		attrs = append(attrs, "fillcolor=lightcyan")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
