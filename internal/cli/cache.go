package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/pkg/cache"
)

// cacheCommand creates the cache command with info and clear subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	return cmd
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := c.openFileCache()
			if err != nil {
				return err
			}
			defer fc.Close()

			entries, bytes, err := fc.Size()
			if err != nil {
				return err
			}
			printKeyValue("Location", dir)
			printKeyValue("Entries", fmt.Sprintf("%d", entries))
			printKeyValue("Size", formatBytes(bytes))
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, _, err := c.openFileCache()
			if err != nil {
				return err
			}
			defer fc.Close()

			if err := fc.Clear(); err != nil {
				return err
			}
			printSuccess("Cache cleared")
			return nil
		},
	}
}

func (c *CLI) openFileCache() (*cache.FileCache, string, error) {
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, "", err
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", err
	}
	return fc.(*cache.FileCache), dir, nil
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
