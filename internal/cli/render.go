package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/render/nodelink"
	rendersvg "github.com/matzehuels/gitlanes/pkg/render/svg"
	"github.com/matzehuels/gitlanes/pkg/render/term"
)

// renderCommand creates the render command for drawing the graph.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format  string
		output  string
		width   int
		noColor bool
		curves  bool
		fl      loadFlags
	)

	cmd := &cobra.Command{
		Use:   "render [repo]",
		Short: "Draw the commit graph",
		Long: `Draw the commit graph.

Formats:
  term  colored Unicode lanes for the terminal (default)
  svg   standalone SVG document from the native lane layout
  dot   Graphviz DOT source for the commit DAG
  gv    node-link SVG rendered in-process via Graphviz
  json  same as 'gitlanes graph'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, repoArg(args), format, output, width, noColor, curves, fl)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "term", "output format: term, svg, dot, gv, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&width, "width", 0, "terminal width (default: detect)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors (term format)")
	cmd.Flags().BoolVar(&curves, "curves", true, "smooth lane changes (svg format)")
	fl.registerLoadFlags(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, repoPath, format, output string, width int, noColor, curves bool, fl loadFlags) error {
	if err := apperrors.ValidateFormat(format); err != nil {
		return err
	}
	ctx := cmd.Context()

	res, err := c.load(ctx, repoPath, fl)
	if err != nil {
		return err
	}
	reportWarnings(res.warnings)

	var data []byte
	switch format {
	case "term":
		data = []byte(term.Render(res.layout, res.repo, term.Options{Width: width, NoColor: noColor}))
	case "svg":
		data = rendersvg.Render(res.layout, rendersvg.Options{UseCurves: curves, ShowRefs: true})
	case "dot":
		data = []byte(nodelink.ToDOT(res.layout, nodelink.Options{}))
	case "gv":
		dot := nodelink.ToDOT(res.layout, nodelink.Options{})
		data, err = nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("graphviz render: %w", err)
		}
	case "json":
		return c.runGraph(cmd, repoPath, output, fl)
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Rendered %s", format)
	printFile(output)
	return nil
}
