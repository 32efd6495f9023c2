// Package layout assigns every commit a (row, lane) coordinate and
// materializes render-ready edges.
//
// [New] consumes an indexed [repograph.Graph] and produces a visual graph:
// rows follow topological order (row 0 is the newest commit), lanes
// are allocated left-to-right with lane 0 reserved for the mainline, and
// every parent link becomes an [Edge] with a routing type. The result is
// deterministic: identical input graphs yield identical layouts, which the
// snapshot tests rely on.
//
// The package also answers render-time queries (viewport extraction,
// bounding boxes, hit tests, edge paths in grid and SVG coordinates) and
// offers a greedy crossing-reduction pass in [Optimize].
package layout

import (
	"sort"

	"github.com/matzehuels/gitlanes/pkg/commit"
	"github.com/matzehuels/gitlanes/pkg/gitparse"
	"github.com/matzehuels/gitlanes/pkg/repograph"
)

// EdgeType classifies how an edge is routed between its two lanes.
type EdgeType int

const (
	// EdgeStraight connects a commit to a parent in the same lane.
	EdgeStraight EdgeType = iota
	// EdgeFork is a first-parent edge whose endpoints occupy different
	// lanes: the commit started a lane of its own.
	EdgeFork
	// EdgeMerge is a second-or-later parent edge of a merge commit.
	EdgeMerge
)

// String returns the edge type as a stable lowercase label.
func (t EdgeType) String() string {
	switch t {
	case EdgeStraight:
		return "straight"
	case EdgeFork:
		return "fork"
	case EdgeMerge:
		return "merge"
	}
	return "unknown"
}

// Ref is a ref decoration on a visual commit, with the head and protection
// flags resolved against the layout options.
type Ref struct {
	Name        string
	Kind        commit.RefKind
	IsHead      bool
	IsProtected bool
	IsAnnotated bool
}

// Commit is a commit placed on the visual grid.
type Commit struct {
	Hash commit.Hash
	// Row is the vertical position; row 0 is the newest commit.
	Row int
	// Lane is the horizontal position; lane 0 is the leftmost column and
	// visual mainline.
	Lane        int
	IsMerge     bool
	IsBranchTip bool
	IsRoot      bool
	IsHead      bool
	Refs        []Ref
	// EdgeIDs lists the outgoing edges in parent order.
	EdgeIDs []string
}

// Edge is a routed parent link. ID has the form
// "{fromHash}-{toHash}-{parentIndex}".
//
// ToRow is -1 when the parent commit lies outside the loaded snapshot; the
// edge is still emitted so renderers can draw it running off the viewport.
type Edge struct {
	ID          string
	FromHash    commit.Hash
	ToHash      commit.Hash
	FromRow     int
	FromLane    int
	ToRow       int
	ToLane      int
	ParentIndex int
	Type        EdgeType
}

// Options configures a layout pass.
type Options struct {
	// ProtectedBranches are exact names or "*" globs; branches matching
	// any pattern get IsProtected set on their visual refs, in addition
	// to whatever the parser already flagged.
	ProtectedBranches []string
}

// Graph is the lane-assigned visual form of a repository.
//
// Commits are in row order and Edges in creation order. The slices and the
// ActiveLanes map are constructed once and must not be mutated; [Optimize]
// returns a fresh Graph rather than rewriting one in place.
type Graph struct {
	Commits    []Commit
	Edges      []Edge
	TotalRows  int
	TotalLanes int
	// ActiveLanes maps each row to the sorted set of lanes occupied at
	// that row, including lanes that edges merely pass through.
	ActiveLanes map[int][]int

	byHash map[commit.Hash]int
	byID   map[string]int
}

// CommitByHash returns the visual commit for a hash and true, or a zero
// commit and false when the hash was not laid out.
func (g *Graph) CommitByHash(h commit.Hash) (Commit, bool) {
	i, ok := g.byHash[h]
	if !ok {
		return Commit{}, false
	}
	return g.Commits[i], true
}

// CommitAtRow returns the commit occupying the given row and true, or a
// zero commit and false for rows outside the layout.
func (g *Graph) CommitAtRow(row int) (Commit, bool) {
	if row < 0 || row >= len(g.Commits) {
		return Commit{}, false
	}
	return g.Commits[row], true
}

// EdgeByID looks up an edge by its "{from}-{to}-{parentIndex}" id.
func (g *Graph) EdgeByID(id string) (Edge, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Edge{}, false
	}
	return g.Edges[i], true
}

// Rebuild assembles a Graph from deserialized parts and restores its
// lookup tables. Callers (the graphio package, stores) are responsible
// for handing back exactly what a layout pass produced; Rebuild performs
// no validation.
func Rebuild(commits []Commit, edges []Edge, totalRows, totalLanes int, activeLanes map[int][]int) *Graph {
	g := &Graph{
		Commits:     commits,
		Edges:       edges,
		TotalRows:   totalRows,
		TotalLanes:  totalLanes,
		ActiveLanes: activeLanes,
	}
	g.index()
	return g
}

// index rebuilds the hash and edge-id lookup tables.
func (g *Graph) index() {
	g.byHash = make(map[commit.Hash]int, len(g.Commits))
	for i, c := range g.Commits {
		g.byHash[c.Hash] = i
	}
	g.byID = make(map[string]int, len(g.Edges))
	for i, e := range g.Edges {
		g.byID[e.ID] = i
	}
}

// sortedLanes returns the keys of an active-lane set in ascending order.
func sortedLanes(active map[int]commit.Hash) []int {
	lanes := make([]int, 0, len(active))
	for lane := range active {
		lanes = append(lanes, lane)
	}
	sort.Ints(lanes)
	return lanes
}

// materializeRefs converts the refs at a commit into visual decorations,
// re-resolving head and protection against the layout options.
func materializeRefs(refs []commit.Ref, headRef string, protected *gitparse.Protected) []Ref {
	if len(refs) == 0 {
		return nil
	}
	out := make([]Ref, len(refs))
	for i, r := range refs {
		out[i] = Ref{
			Name:        r.Name,
			Kind:        r.Kind,
			IsHead:      r.IsHead || (r.Kind == commit.RefLocalBranch && r.Name == headRef),
			IsProtected: r.IsProtected || (r.IsBranch() && protected.Match(r.Name)),
			IsAnnotated: r.IsAnnotated,
		}
	}
	return out
}

// isRootIn mirrors the graph builder's root predicate for visual flags.
func isRootIn(rg *repograph.Graph, c commit.Commit) bool {
	for _, p := range c.Parents {
		if rg.Contains(p) {
			return false
		}
	}
	return true
}
