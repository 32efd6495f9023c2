// Package term renders a visual graph as colored Unicode text for
// terminals.
//
// The rendering is line-oriented: one row per commit, lane glyphs on the
// left, commit details on the right. Lanes that edges pass through are
// drawn as vertical rules using the layout's active-lane sets, so branch
// structure stays readable without full box-art routing.
package term

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/matzehuels/gitlanes/pkg/commit"
	"github.com/matzehuels/gitlanes/pkg/layout"
	"github.com/matzehuels/gitlanes/pkg/repograph"
)

const (
	glyphCommit = "●"
	glyphMerge  = "○"
	glyphLane   = "│"

	defaultWidth = 100
)

// laneColors cycle across lanes as ANSI 256 codes, in the same hue order
// as the SVG renderer's palette.
var laneColors = []lipgloss.Color{
	lipgloss.Color("36"),  // cyan
	lipgloss.Color("35"),  // green
	lipgloss.Color("220"), // amber
	lipgloss.Color("167"), // red
	lipgloss.Color("75"),  // blue
	lipgloss.Color("213"), // purple
}

var (
	styleHash      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleSubject   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleHead      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleBranch    = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleRemote    = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	styleTag       = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleProtected = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// Options configures terminal output.
type Options struct {
	// Width bounds each line; 0 auto-detects the terminal and falls
	// back to 100 columns.
	Width int
	// NoColor disables all styling.
	NoColor bool
}

// DetectWidth returns the current terminal width, or the default when
// stdout is not a terminal.
func DetectWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// Render draws the visual graph, one line per row. The repository graph
// supplies commit details (subject, author) the layout does not carry.
func Render(g *layout.Graph, rg *repograph.Graph, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DetectWidth()
	}

	var b strings.Builder
	for _, vc := range g.Commits {
		b.WriteString(renderRow(g, rg, vc, width, opts.NoColor))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderRow draws lane glyphs followed by hash, refs, and subject.
func renderRow(g *layout.Graph, rg *repograph.Graph, vc layout.Commit, width int, noColor bool) string {
	var b strings.Builder

	active := make(map[int]bool, len(g.ActiveLanes[vc.Row]))
	for _, lane := range g.ActiveLanes[vc.Row] {
		active[lane] = true
	}

	for lane := 0; lane < g.TotalLanes; lane++ {
		var cell string
		switch {
		case lane == vc.Lane && vc.IsMerge:
			cell = glyphMerge
		case lane == vc.Lane:
			cell = glyphCommit
		case active[lane]:
			cell = glyphLane
		default:
			cell = " "
		}
		if !noColor && cell != " " {
			cell = lipgloss.NewStyle().Foreground(laneColors[lane%len(laneColors)]).Render(cell)
		}
		b.WriteString(cell)
		b.WriteByte(' ')
	}

	b.WriteString(paint(vc.Hash.Short(), styleHash, noColor))

	if decorations := renderRefs(vc.Refs, noColor); decorations != "" {
		b.WriteByte(' ')
		b.WriteString(decorations)
	}

	if c, ok := rg.Commit(vc.Hash); ok && c.Subject != "" {
		b.WriteByte(' ')
		b.WriteString(paint(clip(c.Subject, width-g.TotalLanes*2-10), styleSubject, noColor))
	}
	return b.String()
}

// renderRefs formats the decoration list: (HEAD -> main, origin/main, v1.0).
func renderRefs(refs []layout.Ref, noColor bool) string {
	if len(refs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		label := r.Name
		style := styleBranch
		switch {
		case r.IsHead:
			label = "HEAD -> " + label
			style = styleHead
		case r.Kind == commit.RefRemoteBranch:
			style = styleRemote
		case r.Kind == commit.RefTag:
			style = styleTag
		}
		if r.IsProtected {
			style = styleProtected
		}
		parts = append(parts, paint(label, style, noColor))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func paint(s string, style lipgloss.Style, noColor bool) string {
	if noColor {
		return s
	}
	return style.Render(s)
}

// clip truncates s to max runes with an ellipsis.
func clip(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return fmt.Sprintf("%s...", string(runes[:max-3]))
}
