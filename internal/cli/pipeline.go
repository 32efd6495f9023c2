package cli

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlanes/pkg/cache"
	apperrors "github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/gitexec"
	"github.com/matzehuels/gitlanes/pkg/gitparse"
	"github.com/matzehuels/gitlanes/pkg/graphio"
	"github.com/matzehuels/gitlanes/pkg/layout"
	"github.com/matzehuels/gitlanes/pkg/repograph"
)

// layoutTTL bounds how long the CLI trusts a cached layout.
const layoutTTL = 24 * time.Hour

// loadFlags are the per-command knobs shared by graph, render, stats,
// and view.
type loadFlags struct {
	maxCommits  int
	headOnly    bool
	firstParent bool
	optimize    bool
	noCache     bool
}

// registerLoadFlags wires the shared flags into a command.
func (f *loadFlags) registerLoadFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.maxCommits, "max-commits", "n", 0, "cap on history length (default: config, 2000)")
	cmd.Flags().BoolVar(&f.headOnly, "head-only", false, "only commits reachable from HEAD")
	cmd.Flags().BoolVar(&f.firstParent, "first-parent", false, "follow only the first parent of merges")
	cmd.Flags().BoolVar(&f.optimize, "optimize", false, "reduce edge crossings with lane swaps")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
}

// loadResult bundles everything the pipeline produces.
type loadResult struct {
	repo     *repograph.Graph
	layout   *layout.Graph
	warnings []gitparse.ParseError
	cached   bool
}

// load runs executor → parser → builder → layout for one repository,
// consulting the layout cache unless disabled.
func (c *CLI) load(ctx context.Context, repoPath string, fl loadFlags) (*loadResult, error) {
	if err := apperrors.ValidateRepoPath(repoPath); err != nil {
		return nil, err
	}

	maxCommits := fl.maxCommits
	if maxCommits == 0 {
		maxCommits = c.cfg.MaxCommits
	}
	gitOpts := gitexec.Options{
		MaxCommits:  maxCommits,
		HeadOnly:    fl.headOnly,
		FirstParent: fl.firstParent,
	}

	snap, err := gitexec.NewRunner(repoPath).LoadSnapshot(ctx, gitOpts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeGit, err, "load repository %s", repoPath)
	}

	logRes := gitparse.ParseLog(snap.Log)
	protected := gitparse.NewProtected(c.cfg.ProtectedBranches)
	head := gitparse.ParseHead(snap.SymbolicRef, snap.RevParse)
	refs := gitparse.ParseRefs(snap.Refs, head.Ref, protected)
	rg := repograph.Build(logRes.Commits, refs, head.Hash, head.Ref)

	res := &loadResult{repo: rg, warnings: logRes.Errors}

	store := c.newCache(fl.noCache)
	defer store.Close()

	key := cache.LayoutKey(snap.Log, snap.Refs, c.cfg.ProtectedBranches, fl.optimize)
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		if vg, err := graphio.ReadLayout(bytes.NewReader(data)); err == nil {
			res.layout = vg
			res.cached = true
			return res, nil
		}
	}

	p := newProgress(c.Logger)
	vg := layout.New(rg, layout.Options{ProtectedBranches: c.cfg.ProtectedBranches})
	if fl.optimize {
		vg = layout.Optimize(vg)
	}
	res.layout = vg
	p.done(fmt.Sprintf("Laid out %d commits across %d lanes", vg.TotalRows, vg.TotalLanes))

	var buf bytes.Buffer
	if err := graphio.WriteLayout(vg, &buf); err == nil {
		if err := store.Set(ctx, key, buf.Bytes(), layoutTTL); err != nil {
			c.Logger.Debug("Layout cache write failed", "err", err)
		}
	}
	return res, nil
}

// newCache opens the file cache, degrading to the null cache when caching
// is disabled or the cache directory is unusable.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("File cache unavailable", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// reportWarnings surfaces parse diagnostics without failing the command.
func reportWarnings(warnings []gitparse.ParseError) {
	for _, w := range warnings {
		printWarning("%s", w.Error())
	}
	if len(warnings) > 0 {
		printNewline()
	}
}

// summaryLine describes a loaded repository in one line.
func summaryLine(res *loadResult) string {
	head := "detached HEAD"
	if ref := res.repo.HeadRef(); ref != "" {
		head = "HEAD at " + ref
	}
	return fmt.Sprintf("%d commits, %d lanes, %s", res.layout.TotalRows, res.layout.TotalLanes, head)
}
