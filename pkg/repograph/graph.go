// Package repograph builds the indexed, immutable snapshot of a repository's
// commit DAG.
//
// [Build] consumes the parser's output (commits in git --topo-order, refs,
// and the resolved HEAD) and produces a [Graph] with every index the layout
// engine and the traversal queries need: commits by hash, children by
// parent, refs by name and by commit, and the root set.
//
// Graphs tolerate partial history: a ref may target a commit outside the
// loaded set, and a commit's parents may be missing entirely. Traversals
// treat missing parents as the edge of the world and stop there.
//
// A Graph is never mutated after Build returns; all accessors are
// read-only and safe for concurrent readers.
package repograph

import (
	"github.com/matzehuels/gitlanes/pkg/commit"
)

// Graph is the canonical indexed snapshot of a repository.
// Construct it with [Build]; the zero value is an empty repository.
type Graph struct {
	commits      map[commit.Hash]commit.Commit
	refs         []commit.Ref
	head         commit.Hash
	headRef      string
	children     map[commit.Hash][]commit.Hash
	commitsByRef map[string]commit.Hash
	refsByCommit map[commit.Hash][]commit.Ref
	roots        []commit.Hash
	topoOrder    []commit.Hash
}

// Build indexes a commit snapshot into a Graph.
//
// commits must already be in git --topo-order (children before parents);
// the order is preserved as the graph's topological order. head is the
// commit HEAD resolves to (zero for an empty repository) and headRef the
// checked-out branch name (empty when detached).
//
// Build cannot fail: refs targeting unloaded commits and parents outside
// the snapshot are retained as-is.
func Build(commits []commit.Commit, refs []commit.Ref, head commit.Hash, headRef string) *Graph {
	g := &Graph{
		commits:      make(map[commit.Hash]commit.Commit, len(commits)),
		refs:         refs,
		head:         head,
		headRef:      headRef,
		children:     make(map[commit.Hash][]commit.Hash),
		commitsByRef: make(map[string]commit.Hash, 2*len(refs)),
		refsByCommit: make(map[commit.Hash][]commit.Ref),
		topoOrder:    make([]commit.Hash, len(commits)),
	}

	for i, c := range commits {
		g.commits[c.Hash] = c
		g.topoOrder[i] = c.Hash
	}

	// Child lists follow commit-encounter order so layouts stay
	// deterministic for identical input.
	for _, c := range commits {
		for _, p := range c.Parents {
			g.children[p] = append(g.children[p], c.Hash)
		}
	}

	for _, c := range commits {
		if g.isRoot(c) {
			g.roots = append(g.roots, c.Hash)
		}
	}

	for _, r := range refs {
		g.commitsByRef[r.Name] = r.Hash
		g.commitsByRef[r.FullName] = r.Hash
		g.refsByCommit[r.Hash] = append(g.refsByCommit[r.Hash], r)
	}

	return g
}

// isRoot reports whether c terminates history within the loaded snapshot:
// it has no parents, or none of its parents were loaded.
func (g *Graph) isRoot(c commit.Commit) bool {
	for _, p := range c.Parents {
		if _, ok := g.commits[p]; ok {
			return false
		}
	}
	return true
}

// Commit returns the commit with the given hash and true, or a zero commit
// and false if it is not in the snapshot.
func (g *Graph) Commit(h commit.Hash) (commit.Commit, bool) {
	c, ok := g.commits[h]
	return c, ok
}

// Contains reports whether the commit is part of the loaded snapshot.
func (g *Graph) Contains(h commit.Hash) bool {
	_, ok := g.commits[h]
	return ok
}

// CommitCount returns the number of loaded commits.
func (g *Graph) CommitCount() int { return len(g.commits) }

// TopoOrder returns commit hashes in git --topo-order as provided to Build.
// The returned slice is shared; callers must not modify it.
func (g *Graph) TopoOrder() []commit.Hash { return g.topoOrder }

// Children returns the commits that list h as a parent, in encounter order.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Children(h commit.Hash) []commit.Hash { return g.children[h] }

// Refs returns all refs in parser order.
// The returned slice is shared; callers must not modify it.
func (g *Graph) Refs() []commit.Ref { return g.refs }

// RefsAt returns the refs pointing at the given commit, in parser order.
func (g *Graph) RefsAt(h commit.Hash) []commit.Ref { return g.refsByCommit[h] }

// ResolveRef resolves a short ("main") or full ("refs/heads/main") ref name
// to its target commit.
func (g *Graph) ResolveRef(name string) (commit.Hash, bool) {
	h, ok := g.commitsByRef[name]
	return h, ok
}

// Head returns the hash HEAD resolves to; zero for an empty repository.
// The commit itself may be outside the loaded snapshot on shallow loads.
func (g *Graph) Head() commit.Hash { return g.head }

// HeadRef returns the checked-out branch name, or "" when HEAD is detached
// or the repository is empty.
func (g *Graph) HeadRef() string { return g.headRef }

// Roots returns the commits that terminate history within the snapshot,
// in topological order. See [Graph.isRoot] for the partial-load semantics.
func (g *Graph) Roots() []commit.Hash { return g.roots }
