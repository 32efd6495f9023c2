// Package graphio serializes visual graphs for files, the HTTP API, and
// the snapshot store.
//
// The wire format is JSON (bson tags allow the same types to be stored in
// MongoDB) and is designed for round-trip fidelity: export → re-import
// produces a layout equal to the original, so cached and archived layouts
// substitute for freshly computed ones.
package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/gitlanes/pkg/commit"
	"github.com/matzehuels/gitlanes/pkg/layout"
)

// Layout is the canonical serialization of a lane-assigned visual graph.
type Layout struct {
	Commits    []Commit `json:"commits" bson:"commits"`
	Edges      []Edge   `json:"edges" bson:"edges"`
	TotalRows  int      `json:"total_rows" bson:"total_rows"`
	TotalLanes int      `json:"total_lanes" bson:"total_lanes"`
	// ActiveLanes keys are rows as decimal strings: JSON objects and
	// BSON documents both require string keys.
	ActiveLanes map[string][]int `json:"active_lanes,omitempty" bson:"active_lanes,omitempty"`
}

// Commit is the wire form of a visual commit.
type Commit struct {
	Hash        string   `json:"hash" bson:"hash"`
	Row         int      `json:"row" bson:"row"`
	Lane        int      `json:"lane" bson:"lane"`
	IsMerge     bool     `json:"is_merge,omitempty" bson:"is_merge,omitempty"`
	IsBranchTip bool     `json:"is_branch_tip,omitempty" bson:"is_branch_tip,omitempty"`
	IsRoot      bool     `json:"is_root,omitempty" bson:"is_root,omitempty"`
	IsHead      bool     `json:"is_head,omitempty" bson:"is_head,omitempty"`
	Refs        []Ref    `json:"refs,omitempty" bson:"refs,omitempty"`
	EdgeIDs     []string `json:"edge_ids,omitempty" bson:"edge_ids,omitempty"`
}

// Ref is the wire form of a ref decoration.
type Ref struct {
	Name        string `json:"name" bson:"name"`
	Kind        string `json:"kind" bson:"kind"`
	IsHead      bool   `json:"is_head,omitempty" bson:"is_head,omitempty"`
	IsProtected bool   `json:"is_protected,omitempty" bson:"is_protected,omitempty"`
	IsAnnotated bool   `json:"is_annotated,omitempty" bson:"is_annotated,omitempty"`
}

// Edge is the wire form of a routed edge.
type Edge struct {
	ID          string `json:"id" bson:"id"`
	From        string `json:"from" bson:"from"`
	To          string `json:"to" bson:"to"`
	FromRow     int    `json:"from_row" bson:"from_row"`
	FromLane    int    `json:"from_lane" bson:"from_lane"`
	ToRow       int    `json:"to_row" bson:"to_row"`
	ToLane      int    `json:"to_lane" bson:"to_lane"`
	ParentIndex int    `json:"parent_index" bson:"parent_index"`
	Type        string `json:"type" bson:"type"`
}

var refKinds = map[string]commit.RefKind{
	"branch": commit.RefLocalBranch,
	"remote": commit.RefRemoteBranch,
	"tag":    commit.RefTag,
}

var edgeTypes = map[string]layout.EdgeType{
	"straight": layout.EdgeStraight,
	"fork":     layout.EdgeFork,
	"merge":    layout.EdgeMerge,
}

// FromLayout converts a visual graph to its wire form.
func FromLayout(g *layout.Graph) *Layout {
	out := &Layout{
		Commits:    make([]Commit, len(g.Commits)),
		Edges:      make([]Edge, len(g.Edges)),
		TotalRows:  g.TotalRows,
		TotalLanes: g.TotalLanes,
	}

	for i, c := range g.Commits {
		wc := Commit{
			Hash:        c.Hash.String(),
			Row:         c.Row,
			Lane:        c.Lane,
			IsMerge:     c.IsMerge,
			IsBranchTip: c.IsBranchTip,
			IsRoot:      c.IsRoot,
			IsHead:      c.IsHead,
			EdgeIDs:     c.EdgeIDs,
		}
		for _, r := range c.Refs {
			wc.Refs = append(wc.Refs, Ref{
				Name:        r.Name,
				Kind:        r.Kind.String(),
				IsHead:      r.IsHead,
				IsProtected: r.IsProtected,
				IsAnnotated: r.IsAnnotated,
			})
		}
		out.Commits[i] = wc
	}

	for i, e := range g.Edges {
		out.Edges[i] = Edge{
			ID:          e.ID,
			From:        e.FromHash.String(),
			To:          e.ToHash.String(),
			FromRow:     e.FromRow,
			FromLane:    e.FromLane,
			ToRow:       e.ToRow,
			ToLane:      e.ToLane,
			ParentIndex: e.ParentIndex,
			Type:        e.Type.String(),
		}
	}

	if len(g.ActiveLanes) > 0 {
		out.ActiveLanes = make(map[string][]int, len(g.ActiveLanes))
		for row, lanes := range g.ActiveLanes {
			out.ActiveLanes[strconv.Itoa(row)] = lanes
		}
	}
	return out
}

// ToLayout converts the wire form back to a visual graph with its lookup
// indices restored.
func (l *Layout) ToLayout() (*layout.Graph, error) {
	commits := make([]layout.Commit, len(l.Commits))
	for i, wc := range l.Commits {
		c := layout.Commit{
			Hash:        commit.RawHash(wc.Hash),
			Row:         wc.Row,
			Lane:        wc.Lane,
			IsMerge:     wc.IsMerge,
			IsBranchTip: wc.IsBranchTip,
			IsRoot:      wc.IsRoot,
			IsHead:      wc.IsHead,
			EdgeIDs:     wc.EdgeIDs,
		}
		for _, r := range wc.Refs {
			kind, ok := refKinds[r.Kind]
			if !ok {
				return nil, fmt.Errorf("unknown ref kind %q", r.Kind)
			}
			c.Refs = append(c.Refs, layout.Ref{
				Name:        r.Name,
				Kind:        kind,
				IsHead:      r.IsHead,
				IsProtected: r.IsProtected,
				IsAnnotated: r.IsAnnotated,
			})
		}
		commits[i] = c
	}

	edges := make([]layout.Edge, len(l.Edges))
	for i, we := range l.Edges {
		typ, ok := edgeTypes[we.Type]
		if !ok {
			return nil, fmt.Errorf("unknown edge type %q", we.Type)
		}
		edges[i] = layout.Edge{
			ID:          we.ID,
			FromHash:    commit.RawHash(we.From),
			ToHash:      commit.RawHash(we.To),
			FromRow:     we.FromRow,
			FromLane:    we.FromLane,
			ToRow:       we.ToRow,
			ToLane:      we.ToLane,
			ParentIndex: we.ParentIndex,
			Type:        typ,
		}
	}

	active := make(map[int][]int, len(l.ActiveLanes))
	for key, lanes := range l.ActiveLanes {
		row, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("bad active-lane row %q: %w", key, err)
		}
		active[row] = lanes
	}

	return layout.Rebuild(commits, edges, l.TotalRows, l.TotalLanes, active), nil
}

// WriteLayout encodes a visual graph as indented JSON.
func WriteLayout(g *layout.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromLayout(g)); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// ReadLayout decodes a visual graph from JSON.
func ReadLayout(r io.Reader) (*layout.Graph, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return l.ToLayout()
}

// WriteLayoutFile writes a visual graph to a JSON file at path.
func WriteLayoutFile(g *layout.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(g, f)
}

// ReadLayoutFile reads a visual graph from a JSON file at path.
func ReadLayoutFile(path string) (*layout.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
