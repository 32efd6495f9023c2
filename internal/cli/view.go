package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/pkg/layout"
	"github.com/matzehuels/gitlanes/pkg/render/term"
	"github.com/matzehuels/gitlanes/pkg/repograph"
)

// viewCommand creates the view command for interactive browsing.
func (c *CLI) viewCommand() *cobra.Command {
	var fl loadFlags

	cmd := &cobra.Command{
		Use:   "view [repo]",
		Short: "Browse the commit graph interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.load(cmd.Context(), repoArg(args), fl)
			if err != nil {
				return err
			}
			model := newGraphModel(res.layout, res.repo)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
	fl.registerLoadFlags(cmd)

	return cmd
}

// List styles
var (
	viewSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewDetailStyle   = lipgloss.NewStyle().Foreground(colorGray)
	viewFooterStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// graphModel is the bubbletea model for scrolling through the graph.
type graphModel struct {
	graph  *layout.Graph
	repo   *repograph.Graph
	lines  []string
	Cursor int
	Height int
	Offset int
}

func newGraphModel(g *layout.Graph, rg *repograph.Graph) graphModel {
	rendered := term.Render(g, rg, term.Options{Width: 120, NoColor: true})
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	return graphModel{
		graph:  g,
		repo:   rg,
		lines:  lines,
		Height: 20,
	}
}

func (m graphModel) Init() tea.Cmd {
	return nil
}

func (m graphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6 // room for header and detail footer
		if m.Height < 1 {
			m.Height = 1
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.lines)-1 {
				m.Cursor++
			}
		case "pgup":
			m.Cursor -= m.Height
			if m.Cursor < 0 {
				m.Cursor = 0
			}
		case "pgdown":
			m.Cursor += m.Height
			if m.Cursor > len(m.lines)-1 {
				m.Cursor = len(m.lines) - 1
			}
		case "g":
			m.Cursor = 0
		case "G":
			m.Cursor = len(m.lines) - 1
		}
	}

	// Keep the cursor inside the visible window.
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m graphModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("gitlanes") + "\n\n")

	end := m.Offset + m.Height
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.Offset; i < end; i++ {
		line := m.lines[i]
		if i == m.Cursor {
			b.WriteString(viewSelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.detailLine())
	b.WriteByte('\n')
	b.WriteString(viewFooterStyle.Render("j/k move · g/G jump · q quit"))
	return b.String()
}

// detailLine describes the selected commit.
func (m graphModel) detailLine() string {
	vc, ok := m.graph.CommitAtRow(m.Cursor)
	if !ok {
		return ""
	}
	c, ok := m.repo.Commit(vc.Hash)
	if !ok {
		return viewDetailStyle.Render(vc.Hash.Short())
	}
	return viewDetailStyle.Render(fmt.Sprintf("%s  %s <%s>  %s",
		vc.Hash.Short(), c.Author.Name, c.Author.Email,
		c.CommittedAt.Format(time.DateTime)))
}
