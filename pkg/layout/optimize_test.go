package layout

import (
	"slices"
	"testing"
)

func TestEdgesCross(t *testing.T) {
	tests := []struct {
		name string
		a, b Edge
		want bool
	}{
		{
			name: "opposite diagonals cross",
			a:    Edge{FromRow: 0, ToRow: 2, FromLane: 0, ToLane: 2},
			b:    Edge{FromRow: 0, ToRow: 2, FromLane: 2, ToLane: 0},
			want: true,
		},
		{
			name: "parallel diagonals do not",
			a:    Edge{FromRow: 0, ToRow: 2, FromLane: 0, ToLane: 2},
			b:    Edge{FromRow: 0, ToRow: 2, FromLane: 1, ToLane: 3},
			want: false,
		},
		{
			name: "touching row spans do not",
			a:    Edge{FromRow: 0, ToRow: 1, FromLane: 0, ToLane: 2},
			b:    Edge{FromRow: 1, ToRow: 2, FromLane: 2, ToLane: 0},
			want: false,
		},
		{
			name: "touching lane spans do not",
			a:    Edge{FromRow: 0, ToRow: 2, FromLane: 0, ToLane: 1},
			b:    Edge{FromRow: 0, ToRow: 2, FromLane: 2, ToLane: 1},
			want: false,
		},
		{
			name: "vertical edge never crosses",
			a:    Edge{FromRow: 0, ToRow: 3, FromLane: 1, ToLane: 1},
			b:    Edge{FromRow: 0, ToRow: 2, FromLane: 2, ToLane: 0},
			want: false,
		},
		{
			name: "horizontal edge never crosses",
			a:    Edge{FromRow: 1, ToRow: 1, FromLane: 0, ToLane: 3},
			b:    Edge{FromRow: 0, ToRow: 2, FromLane: 2, ToLane: 0},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edgesCross(tt.a, tt.b); got != tt.want {
				t.Errorf("edgesCross() = %v, want %v", got, tt.want)
			}
			// Crossing is symmetric.
			if got := edgesCross(tt.b, tt.a); got != tt.want {
				t.Errorf("edgesCross() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountCrossings(t *testing.T) {
	edges := []Edge{
		{FromRow: 0, ToRow: 2, FromLane: 0, ToLane: 2},
		{FromRow: 0, ToRow: 2, FromLane: 2, ToLane: 0},
		{FromRow: 0, ToRow: 2, FromLane: 1, ToLane: 1},
	}
	if got := CountCrossings(edges); got != 1 {
		t.Errorf("CountCrossings() = %d, want 1", got)
	}
}

func TestOptimizePreservesTopology(t *testing.T) {
	g := New(build(
		mk("f", "d", "e"),
		mk("e", "c"),
		mk("d", "b"),
		mk("c", "a"),
		mk("b", "a"),
		mk("a"),
	), Options{})

	opt := Optimize(g)

	if opt.TotalRows != g.TotalRows || opt.TotalLanes != g.TotalLanes {
		t.Errorf("rows/lanes = %d/%d, want %d/%d", opt.TotalRows, opt.TotalLanes, g.TotalRows, g.TotalLanes)
	}

	// Commit hash set survives.
	if len(opt.Commits) != len(g.Commits) {
		t.Fatalf("commit count = %d, want %d", len(opt.Commits), len(g.Commits))
	}
	for _, c := range g.Commits {
		if _, ok := opt.CommitByHash(c.Hash); !ok {
			t.Errorf("commit %s lost by optimization", c.Hash.Short())
		}
	}

	// Edge endpoint triples survive.
	for _, e := range g.Edges {
		oe, ok := opt.EdgeByID(e.ID)
		if !ok {
			t.Errorf("edge %s lost by optimization", e.ID)
			continue
		}
		if oe.FromHash != e.FromHash || oe.ToHash != e.ToHash || oe.ParentIndex != e.ParentIndex {
			t.Errorf("edge %s endpoints changed", e.ID)
		}
	}

	// Crossings never increase.
	if CountCrossings(opt.Edges) > CountCrossings(g.Edges) {
		t.Error("Optimize() increased crossings")
	}
}

func TestOptimizeIsFixedPoint(t *testing.T) {
	g := New(build(
		mk("f", "d", "e"),
		mk("e", "c"),
		mk("d", "b"),
		mk("c", "a"),
		mk("b", "a"),
		mk("a"),
	), Options{})

	once := Optimize(g)
	twice := Optimize(once)

	if twice != once {
		t.Fatal("Optimize(Optimize(g)) allocated a new graph, want the same fixed point")
	}
}

func TestOptimizeIdentityReturnsInput(t *testing.T) {
	// A single-lane chain has nothing to improve.
	g := New(build(mk("c", "b"), mk("b", "a"), mk("a")), Options{})
	if Optimize(g) != g {
		t.Error("Optimize() on linear layout = new graph, want input unchanged")
	}
}

func TestOptimizeActiveLanesStaySorted(t *testing.T) {
	g := New(build(
		mk("f", "d", "e"),
		mk("e", "c"),
		mk("d", "b"),
		mk("c", "a"),
		mk("b", "a"),
		mk("a"),
	), Options{})

	opt := Optimize(g)
	for row, lanes := range opt.ActiveLanes {
		if !slices.IsSorted(lanes) {
			t.Errorf("ActiveLanes[%d] = %v, not sorted", row, lanes)
		}
		if len(lanes) != len(g.ActiveLanes[row]) {
			t.Errorf("ActiveLanes[%d] size changed", row)
		}
	}
}
