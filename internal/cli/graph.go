package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/pkg/graphio"
)

// graphCommand creates the graph command for exporting lane layouts.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		fl     loadFlags
	)

	cmd := &cobra.Command{
		Use:   "graph [repo]",
		Short: "Compute the lane layout and export it as JSON",
		Long: `Compute the lane layout and export it as JSON.

The graph command runs git against the repository (current directory by
default), parses the history, assigns every commit a (row, lane)
coordinate, and writes the resulting visual graph as JSON. The output can
be rendered with 'gitlanes render' or consumed by other tooling.

Results are cached locally keyed by the raw git output, so repeated runs
against an unchanged repository are instant.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, repoArg(args), output, fl)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	fl.registerLoadFlags(cmd)

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, repoPath, output string, fl loadFlags) error {
	ctx := cmd.Context()

	spinner := newSpinnerWithContext(ctx, "Laying out commit graph...")
	spinner.Start()

	res, err := c.load(ctx, repoPath, fl)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	reportWarnings(res.warnings)

	if output == "" {
		return graphio.WriteLayout(res.layout, os.Stdout)
	}

	if err := graphio.WriteLayoutFile(res.layout, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(res.layout.TotalRows, res.layout.TotalLanes, res.cached)
	printNewline()
	printNextStep("Render", "gitlanes render "+repoPath)

	return nil
}
