// Package cli implements the gitlanes command-line interface.
//
// This package provides commands for laying out a repository's commit
// graph, rendering it to the terminal or to files, serving it live over
// HTTP, and managing the layout cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - graph: Compute the lane layout and export it as JSON
//   - render: Draw the graph (terminal, SVG, Graphviz DOT)
//   - stats: Summarize the repository
//   - view: Browse the graph interactively
//   - serve: Serve the graph over HTTP with live updates
//   - cache: Manage the layout cache
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/internal/config"
	"github.com/matzehuels/gitlanes/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "gitlanes"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gitlanes visualizes git history as commit lanes",
		Long:         `Gitlanes lays out a repository's commit graph in horizontal lanes — one row per commit, one lane per concurrent branch — and renders it for terminals, SVG, or live browsers.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/gitlanes/config.toml)")

	// Register all subcommands
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// repoArg resolves the optional positional repository argument.
func repoArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
