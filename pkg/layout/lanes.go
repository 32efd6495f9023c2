package layout

import (
	"fmt"
	"sort"

	"github.com/matzehuels/gitlanes/pkg/commit"
	"github.com/matzehuels/gitlanes/pkg/gitparse"
	"github.com/matzehuels/gitlanes/pkg/repograph"
)

// laneState is the mutable bookkeeping of one layout pass.
type laneState struct {
	// laneByCommit holds the lane of every placed commit plus the lanes
	// reserved for not-yet-placed parents by their children.
	laneByCommit map[commit.Hash]int
	// active maps lane -> hash currently occupying it: the commit on the
	// current row, or a pending parent whose edge passes through.
	active map[int]commit.Hash
	// reserved counts pending parent reservations per lane; a lane with
	// reservations must not be freed or its edge would be truncated.
	reserved map[int]int
	free     []int
	maxLane  int
}

func newLaneState() *laneState {
	return &laneState{
		laneByCommit: make(map[commit.Hash]int),
		active:       make(map[int]commit.Hash),
		reserved:     make(map[int]int),
		maxLane:      -1,
	}
}

// allocate returns the lowest free lane, or opens a new one.
// free is re-sorted on every call so reuse always picks the leftmost
// candidate and layouts stay compact.
func (s *laneState) allocate() int {
	if len(s.free) > 0 {
		sort.Ints(s.free)
		lane := s.free[0]
		s.free = s.free[1:]
		return lane
	}
	s.maxLane++
	return s.maxLane
}

// reserve records that parent p will occupy lane when its row is reached.
func (s *laneState) reserve(p commit.Hash, lane int) {
	s.laneByCommit[p] = lane
	s.active[lane] = p
	s.reserved[lane]++
}

// New lays out a repository graph on the visual grid.
//
// Commits are placed in topological order, one per row, newest first.
// Each commit takes the lane a child reserved for it, or the lowest free
// lane otherwise. First parents inherit their child's lane (the
// mainline continuation); each additional merge parent opens a lane of its
// own. Lane 0 is never recycled so the mainline keeps a stable left edge.
//
// The layout never fails; an empty graph yields an empty layout with zero
// rows and lanes.
func New(rg *repograph.Graph, opts Options) *Graph {
	protected := gitparse.NewProtected(opts.ProtectedBranches)
	topo := rg.TopoOrder()

	g := &Graph{
		Commits:     make([]Commit, 0, len(topo)),
		ActiveLanes: make(map[int][]int, len(topo)),
	}
	st := newLaneState()

	// git --topo-order lists children before their parents, newest first,
	// which is exactly the processing order lane reservation needs: a
	// commit's lane is reserved by its children before it is placed.
	for row, hash := range topo {
		c, ok := rg.Commit(hash)
		if !ok {
			continue
		}

		lane, wasReserved := st.laneByCommit[hash]
		if wasReserved {
			st.reserved[lane]--
			if st.reserved[lane] <= 0 {
				delete(st.reserved, lane)
			}
		} else {
			lane = st.allocate()
			st.laneByCommit[hash] = lane
		}
		st.active[lane] = hash

		vc := Commit{
			Hash:        hash,
			Row:         row,
			Lane:        lane,
			IsMerge:     c.IsMerge(),
			IsBranchTip: len(rg.RefsAt(hash)) > 0,
			IsRoot:      isRootIn(rg, c),
			IsHead:      hash == rg.Head(),
			Refs:        materializeRefs(rg.RefsAt(hash), rg.HeadRef(), protected),
		}

		for pi, p := range c.Parents {
			parentLane, ok := st.laneByCommit[p]
			switch {
			case ok:
				// A sibling already reserved the parent's lane.
			case pi == 0:
				// Mainline continuation: the parent inherits our lane.
				parentLane = lane
				st.reserve(p, parentLane)
			default:
				parentLane = st.allocate()
				st.reserve(p, parentLane)
			}

			e := Edge{
				ID:          fmt.Sprintf("%s-%s-%d", hash, p, pi),
				FromHash:    hash,
				ToHash:      p,
				FromRow:     row,
				FromLane:    lane,
				ToRow:       -1, // resolved in the second pass
				ToLane:      parentLane,
				ParentIndex: pi,
				Type:        edgeType(c, pi, lane, parentLane),
			}
			g.Edges = append(g.Edges, e)
			vc.EdgeIDs = append(vc.EdgeIDs, e.ID)
		}

		st.maybeFree(rg, hash, lane)

		g.ActiveLanes[row] = sortedLanes(st.active)
		if st.active[lane] == hash {
			delete(st.active, lane)
		}

		g.Commits = append(g.Commits, vc)
	}

	g.TotalRows = len(g.Commits)
	g.TotalLanes = st.maxLane + 1
	g.index()

	// Second pass: edges now know where their parents landed. Edges into
	// unloaded history keep ToRow = -1.
	for i := range g.Edges {
		if j, ok := g.byHash[g.Edges[i].ToHash]; ok {
			g.Edges[i].ToRow = g.Commits[j].Row
		}
	}

	return g
}

// edgeType classifies the edge to parent pi per the routing rules.
func edgeType(c commit.Commit, pi, lane, parentLane int) EdgeType {
	switch {
	case c.IsMerge() && pi >= 1:
		return EdgeMerge
	case lane != parentLane:
		return EdgeFork
	default:
		return EdgeStraight
	}
}

// maybeFree returns the commit's lane to the free pool when it is safe:
// no placed child sits in the lane, no pending reservation targets it, and
// it is not lane 0. The policy is conservative on purpose; a lane held a
// little too long costs width, a lane released too early truncates an edge.
func (s *laneState) maybeFree(rg *repograph.Graph, hash commit.Hash, lane int) {
	if lane == 0 || s.reserved[lane] > 0 {
		return
	}
	// Children were placed on earlier rows (topological order), so
	// laneByCommit already records their final lanes.
	for _, child := range rg.Children(hash) {
		if s.laneByCommit[child] == lane {
			return
		}
	}
	s.free = append(s.free, lane)
}
