// Package gitexec captures the raw git output the parsing core consumes.
//
// The executor is the only place in the module that spawns processes or
// reads a working tree; everything downstream operates on the byte buffers
// in a [Snapshot]. Keeping the subprocess boundary here means the core
// stays deterministic and testable without a git installation.
package gitexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// LogFormat is the exact pretty-format specifier the log parser expects:
// NUL-separated fields, 0x01-terminated records. See gitparse.ParseLog.
const LogFormat = "%H%x00%P%x00%an%x00%ae%x00%aI%x00%cn%x00%ce%x00%cI%x00%s%x00%b%x01"

// RefFormat is the for-each-ref format the ref parser expects.
const RefFormat = "%(objectname) %(refname) %(objecttype)"

// ErrNotARepository is returned when the target path is not inside a git
// work tree.
var ErrNotARepository = errors.New("not a git repository")

// Options bound what the executor asks git for. The zero value loads the
// full history of all refs.
type Options struct {
	// MaxCommits caps the log length; 0 means unlimited.
	MaxCommits int
	// Since and Until filter the log by commit date when non-zero. The
	// filtering happens in git, before the core ever sees the buffer.
	Since time.Time
	Until time.Time
	// FirstParent follows only the mainline of merges.
	FirstParent bool
	// HeadOnly restricts the log to commits reachable from HEAD instead
	// of all refs.
	HeadOnly bool
}

// Snapshot is one complete capture of a repository's state: everything
// the core needs, fetched in a single pass.
type Snapshot struct {
	Log         []byte
	Refs        []byte
	SymbolicRef string
	RevParse    string
}

// Runner executes git against one repository.
type Runner struct {
	dir string
}

// NewRunner creates a runner for the repository at dir.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir}
}

// LogArgs returns the argv (after "git") for the history query.
// Kept separate from execution so tests can pin the exact command line.
func LogArgs(opts Options) []string {
	args := []string{"log", "--topo-order", "--format=" + LogFormat}
	if !opts.HeadOnly {
		args = append(args, "--all")
	}
	if opts.MaxCommits > 0 {
		args = append(args, fmt.Sprintf("-n%d", opts.MaxCommits))
	}
	if !opts.Since.IsZero() {
		args = append(args, "--since="+opts.Since.Format(time.RFC3339))
	}
	if !opts.Until.IsZero() {
		args = append(args, "--until="+opts.Until.Format(time.RFC3339))
	}
	if opts.FirstParent {
		args = append(args, "--first-parent")
	}
	return args
}

// RefArgs returns the argv (after "git") for the ref listing.
func RefArgs() []string {
	return []string{"for-each-ref", "--format=" + RefFormat, "refs/heads", "refs/remotes", "refs/tags"}
}

// LoadSnapshot checks that the directory is a repository, then captures
// log, refs, and HEAD state in four further git invocations.
//
// An empty repository is not an error: the log and rev-parse calls fail on
// unborn HEAD and degrade to empty buffers, which the parser turns into an
// empty graph. A missing repository is reported as [ErrNotARepository].
func (r *Runner) LoadSnapshot(ctx context.Context, opts Options) (*Snapshot, error) {
	if _, err := r.run(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, r.dir)
	}

	snap := &Snapshot{}

	logOut, err := r.run(ctx, LogArgs(opts)...)
	if err != nil && !isEmptyHistoryErr(err) {
		return nil, fmt.Errorf("git log: %w", err)
	}
	snap.Log = logOut

	refOut, err := r.run(ctx, RefArgs()...)
	if err != nil {
		return nil, fmt.Errorf("git for-each-ref: %w", err)
	}
	snap.Refs = refOut

	// Both HEAD probes legitimately fail: symbolic-ref on detached HEAD,
	// rev-parse on an empty repository. Absence is data, not an error.
	if out, err := r.run(ctx, "symbolic-ref", "--short", "HEAD"); err == nil {
		snap.SymbolicRef = string(out)
	}
	if out, err := r.run(ctx, "rev-parse", "HEAD"); err == nil {
		snap.RevParse = string(out)
	}

	return snap, nil
}

// run executes one git command and returns its stdout.
// Failures carry a trimmed stderr excerpt for diagnostics.
func (r *Runner) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, excerpt(msg))
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

// isEmptyHistoryErr detects the git log failure on a repository with no
// commits yet (unborn HEAD).
func isEmptyHistoryErr(err error) bool {
	s := err.Error()
	return strings.Contains(s, "does not have any commits") ||
		strings.Contains(s, "unknown revision") ||
		strings.Contains(s, "bad default revision")
}

// excerpt bounds stderr noise in wrapped errors.
func excerpt(s string) string {
	const limit = 200
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
