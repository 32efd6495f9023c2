package repograph

import (
	"time"

	"github.com/matzehuels/gitlanes/pkg/commit"
)

// Stats summarizes a graph for display and API responses.
type Stats struct {
	Commits        int       `json:"commits"`
	Merges         int       `json:"merges"`
	Roots          int       `json:"roots"`
	LocalBranches  int       `json:"local_branches"`
	RemoteBranches int       `json:"remote_branches"`
	Tags           int       `json:"tags"`
	MaxParents     int       `json:"max_parents"`
	OldestCommit   time.Time `json:"oldest_commit,omitzero"`
	NewestCommit   time.Time `json:"newest_commit,omitzero"`
}

// Stats walks the snapshot once and accumulates summary counters.
// Oldest/Newest are committer dates and stay zero for an empty graph.
func (g *Graph) Stats() Stats {
	s := Stats{
		Commits: len(g.commits),
		Roots:   len(g.roots),
	}

	for _, c := range g.commits {
		if c.IsMerge() {
			s.Merges++
		}
		if len(c.Parents) > s.MaxParents {
			s.MaxParents = len(c.Parents)
		}
		if s.OldestCommit.IsZero() || c.CommittedAt.Before(s.OldestCommit) {
			s.OldestCommit = c.CommittedAt
		}
		if s.NewestCommit.IsZero() || c.CommittedAt.After(s.NewestCommit) {
			s.NewestCommit = c.CommittedAt
		}
	}

	for _, r := range g.refs {
		switch r.Kind {
		case commit.RefLocalBranch:
			s.LocalBranches++
		case commit.RefRemoteBranch:
			s.RemoteBranches++
		case commit.RefTag:
			s.Tags++
		}
	}
	return s
}
