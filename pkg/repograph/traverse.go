package repograph

import "github.com/matzehuels/gitlanes/pkg/commit"

// Unlimited disables the depth cap on Ancestors and Descendants.
const Unlimited = 0

// Ancestors returns the ancestors of h in BFS order (increasing distance).
// h itself is never included. maxDepth caps the walk; pass [Unlimited] for
// the full ancestry. Parents outside the loaded snapshot terminate their
// branch silently and do not appear in the result.
func (g *Graph) Ancestors(h commit.Hash, maxDepth int) []commit.Hash {
	return g.walk(h, maxDepth, g.parentsOf)
}

// Descendants returns the descendants of h in BFS order, the symmetric
// query to [Graph.Ancestors] over the child index.
func (g *Graph) Descendants(h commit.Hash, maxDepth int) []commit.Hash {
	return g.walk(h, maxDepth, g.Children)
}

// walk is the shared BFS over either the parent or the child relation.
func (g *Graph) walk(start commit.Hash, maxDepth int, next func(commit.Hash) []commit.Hash) []commit.Hash {
	if !g.Contains(start) {
		return nil
	}

	type item struct {
		hash  commit.Hash
		depth int
	}
	visited := map[commit.Hash]bool{start: true}
	queue := []item{{start, 0}}
	var order []commit.Hash

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if maxDepth != Unlimited && cur.depth >= maxDepth {
			continue
		}
		for _, n := range next(cur.hash) {
			if visited[n] || !g.Contains(n) {
				continue
			}
			visited[n] = true
			order = append(order, n)
			queue = append(queue, item{n, cur.depth + 1})
		}
	}
	return order
}

// parentsOf returns the parents of a loaded commit.
func (g *Graph) parentsOf(h commit.Hash) []commit.Hash {
	c, ok := g.commits[h]
	if !ok {
		return nil
	}
	return c.Parents
}

// IsAncestor reports whether candidate is a proper ancestor of target.
// A commit is not its own ancestor. The walk runs from target toward the
// roots and stops as soon as candidate appears on a parent pointer, so
// candidate may lie just outside the loaded snapshot.
func (g *Graph) IsAncestor(candidate, target commit.Hash) bool {
	if candidate == target {
		return false
	}

	visited := map[commit.Hash]bool{target: true}
	queue := []commit.Hash{target}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range g.parentsOf(cur) {
			if p == candidate {
				return true
			}
			if !visited[p] && g.Contains(p) {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// MergeBase returns a common ancestor of a and b, or false when the two
// share no history within the snapshot.
//
// The result is the first common ancestor encountered by a BFS from b, not
// necessarily one of Git's "best" common ancestors: for criss-cross merges
// with several lowest common ancestors the choice is deterministic but may
// differ from git merge-base. Linear and simply-branched histories match
// Git exactly.
func (g *Graph) MergeBase(a, b commit.Hash) (commit.Hash, bool) {
	if !g.Contains(a) || !g.Contains(b) {
		return "", false
	}

	reachable := map[commit.Hash]bool{a: true}
	for _, h := range g.Ancestors(a, Unlimited) {
		reachable[h] = true
	}
	if reachable[b] {
		return b, true
	}

	visited := map[commit.Hash]bool{b: true}
	queue := []commit.Hash{b}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range g.parentsOf(cur) {
			if reachable[p] {
				return p, true
			}
			if !visited[p] && g.Contains(p) {
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}
	return "", false
}

// CommitsBetween returns the commits reachable from include but not from
// exclude, in BFS order from include (inclusive). This is the core of
// "what does this branch add over that one" (git log exclude..include).
// The walk does not descend through excluded commits.
func (g *Graph) CommitsBetween(include, exclude commit.Hash) []commit.Hash {
	if !g.Contains(include) {
		return nil
	}

	excluded := map[commit.Hash]bool{exclude: true}
	for _, h := range g.Ancestors(exclude, Unlimited) {
		excluded[h] = true
	}

	var order []commit.Hash
	visited := map[commit.Hash]bool{include: true}
	queue := []commit.Hash{include}
	if !excluded[include] {
		order = append(order, include)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if excluded[cur] {
			continue
		}
		for _, p := range g.parentsOf(cur) {
			if visited[p] || !g.Contains(p) {
				continue
			}
			visited[p] = true
			if !excluded[p] {
				order = append(order, p)
			}
			queue = append(queue, p)
		}
	}
	return order
}
