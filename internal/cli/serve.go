package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/internal/server"
	"github.com/matzehuels/gitlanes/pkg/cache"
	"github.com/matzehuels/gitlanes/pkg/gitexec"
	"github.com/matzehuels/gitlanes/pkg/store"
)

// serveCommand creates the serve command for live visualization.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redis    string
		mongoURI string
		optimize bool
	)

	cmd := &cobra.Command{
		Use:   "serve [repo]",
		Short: "Serve the commit graph over HTTP with live updates",
		Long: `Serve the commit graph over HTTP with live updates.

The server exposes the layout as JSON and SVG under /api/ and pushes a
fresh graph to websocket clients whenever the repository changes (watched
through the .git directory). With a Redis address, layouts are cached
across instances; with a MongoDB URI, layouts can be archived as named
snapshots via /api/snapshots.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, repoArg(args), addr, redis, mongoURI, optimize)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config, :8440)")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address for the shared layout cache")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb uri for the snapshot store")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "reduce edge crossings with lane swaps")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, repoPath, addr, redisAddr, mongoURI string, optimize bool) error {
	ctx := cmd.Context()

	if addr == "" {
		addr = c.cfg.Serve.Addr
	}
	if redisAddr == "" {
		redisAddr = c.cfg.Serve.RedisAddr
	}
	if mongoURI == "" {
		mongoURI = c.cfg.Serve.MongoURI
	}

	var layoutCache cache.Cache
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return err
		}
		defer rc.Close()
		layoutCache = rc
		c.Logger.Info("Using redis layout cache", "addr", redisAddr)
	}

	var snapStore store.Store
	if mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, mongoURI, c.cfg.Serve.MongoDatabase)
		if err != nil {
			return err
		}
		defer ms.Close(ctx)
		snapStore = ms
		c.Logger.Info("Using mongodb snapshot store", "database", c.cfg.Serve.MongoDatabase)
	}

	srv := server.New(server.Config{
		RepoPath:          repoPath,
		Addr:              addr,
		Logger:            c.Logger,
		Cache:             layoutCache,
		Store:             snapStore,
		GitOptions:        gitexec.Options{MaxCommits: c.cfg.MaxCommits},
		ProtectedBranches: c.cfg.ProtectedBranches,
		Optimize:          optimize,
	})
	return srv.Run(ctx)
}
