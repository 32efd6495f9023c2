package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var fl loadFlags

	cmd := &cobra.Command{
		Use:   "stats [repo]",
		Short: "Summarize the repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd, repoArg(args), fl)
		},
	}
	fl.registerLoadFlags(cmd)

	return cmd
}

func (c *CLI) runStats(cmd *cobra.Command, repoPath string, fl loadFlags) error {
	res, err := c.load(cmd.Context(), repoPath, fl)
	if err != nil {
		return err
	}
	reportWarnings(res.warnings)

	s := res.repo.Stats()

	fmt.Println(StyleTitle.Render("Repository statistics"))
	printNewline()
	printKeyValue("Commits", fmt.Sprintf("%d", s.Commits))
	printKeyValue("Merges", fmt.Sprintf("%d", s.Merges))
	printKeyValue("Roots", fmt.Sprintf("%d", s.Roots))
	printKeyValue("Max parents", fmt.Sprintf("%d", s.MaxParents))
	printKeyValue("Branches", fmt.Sprintf("%d local, %d remote", s.LocalBranches, s.RemoteBranches))
	printKeyValue("Tags", fmt.Sprintf("%d", s.Tags))
	printKeyValue("Lanes", fmt.Sprintf("%d", res.layout.TotalLanes))
	if !s.OldestCommit.IsZero() {
		printKeyValue("History", fmt.Sprintf("%s to %s",
			s.OldestCommit.Format(time.DateOnly), s.NewestCommit.Format(time.DateOnly)))
	}
	printNewline()
	printSuccess("%s", summaryLine(res))
	return nil
}
