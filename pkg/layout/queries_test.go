package layout

import (
	"slices"
	"testing"
)

func diamond() *Graph {
	return New(build(mk("d", "b", "c"), mk("b", "a"), mk("c", "a"), mk("a")), Options{})
}

func TestVisibleCommits(t *testing.T) {
	g := diamond()

	tests := []struct {
		name       string
		start, end int
		wantRows   []int
	}{
		{"full range", 0, 3, []int{0, 1, 2, 3}},
		{"middle", 1, 2, []int{1, 2}},
		{"end clamped", 2, 100, []int{2, 3}},
		{"start clamped", -5, 0, []int{0}},
		{"empty", 3, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []int
			for _, c := range g.VisibleCommits(tt.start, tt.end) {
				rows = append(rows, c.Row)
			}
			if !slices.Equal(rows, tt.wantRows) {
				t.Errorf("VisibleCommits(%d, %d) rows = %v, want %v", tt.start, tt.end, rows, tt.wantRows)
			}
		})
	}
}

func TestVisibleEdgesIncludesPassThrough(t *testing.T) {
	g := diamond()

	// The d->c edge spans rows 0..2 and must appear in a viewport that
	// only shows row 1.
	var ids []string
	for _, e := range g.VisibleEdges(1, 1) {
		ids = append(ids, e.ID)
	}
	if !slices.Contains(ids, edgeID("d", "c", 1)) {
		t.Errorf("VisibleEdges(1, 1) = %v, missing pass-through edge", ids)
	}

	if got := g.VisibleEdges(100, 200); len(got) != 0 {
		t.Errorf("VisibleEdges out of range = %d edges, want 0", len(got))
	}
}

func TestBoundingBox(t *testing.T) {
	g := diamond()

	box := BoundingBox(g.Commits, g.Edges)
	if box.MinRow != 0 || box.MaxRow != 3 {
		t.Errorf("row extent = [%d, %d], want [0, 3]", box.MinRow, box.MaxRow)
	}
	if box.MinLane != 0 || box.MaxLane != 1 {
		t.Errorf("lane extent = [%d, %d], want [0, 1]", box.MinLane, box.MaxLane)
	}

	if got := BoundingBox(nil, g.Edges); got != (Box{}) {
		t.Errorf("BoundingBox(no commits) = %+v, want zero box", got)
	}
}

func TestCommitAtPosition(t *testing.T) {
	g := diamond()
	c, _ := g.CommitByHash(h("c"))

	if got, ok := g.CommitAtPosition(c.Row, float64(c.Lane)+0.4, DefaultTolerance); !ok || got.Hash != c.Hash {
		t.Errorf("CommitAtPosition near lane = %v, %v, want hit", got.Hash, ok)
	}
	if _, ok := g.CommitAtPosition(c.Row, float64(c.Lane)+0.6, DefaultTolerance); ok {
		t.Error("CommitAtPosition outside tolerance = hit, want miss")
	}
	if _, ok := g.CommitAtPosition(99, 0, DefaultTolerance); ok {
		t.Error("CommitAtPosition(bad row) = hit, want miss")
	}
}

func TestEdgePathShapes(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want []Point
	}{
		{
			name: "straight",
			edge: Edge{FromRow: 0, FromLane: 0, ToRow: 1, ToLane: 0, Type: EdgeStraight},
			want: []Point{{0, 0}, {1, 0}},
		},
		{
			name: "merge goes horizontal first",
			edge: Edge{FromRow: 0, FromLane: 0, ToRow: 2, ToLane: 1, Type: EdgeMerge},
			want: []Point{{0, 0}, {0, 1}, {2, 1}},
		},
		{
			name: "fork switches lanes midway",
			edge: Edge{FromRow: 0, FromLane: 1, ToRow: 4, ToLane: 0, Type: EdgeFork},
			want: []Point{{0, 1}, {2, 1}, {2, 0}, {4, 0}},
		},
		{
			name: "same-lane merge degenerates to a segment",
			edge: Edge{FromRow: 0, FromLane: 1, ToRow: 3, ToLane: 1, Type: EdgeMerge},
			want: []Point{{0, 1}, {3, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EdgePath(tt.edge); !slices.Equal(got, tt.want) {
				t.Errorf("EdgePath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgePathSVG(t *testing.T) {
	straight := EdgePathSVG([]Point{{0, 0}, {1, 0}}, 20, 10, false)
	if straight != "M 5 10 L 5 30" {
		t.Errorf("straight path = %q", straight)
	}

	// Curves require at least three points; two points fall back to lines.
	twoPoint := EdgePathSVG([]Point{{0, 0}, {1, 0}}, 20, 10, true)
	if twoPoint != straight {
		t.Errorf("two-point curved path = %q, want %q", twoPoint, straight)
	}

	curved := EdgePathSVG([]Point{{0, 0}, {0, 1}, {2, 1}}, 20, 10, true)
	want := "M 5 10 Q 15 10 15 30 L 15 50"
	if curved != want {
		t.Errorf("curved path = %q, want %q", curved, want)
	}

	if got := EdgePathSVG(nil, 20, 10, false); got != "" {
		t.Errorf("empty path = %q, want empty", got)
	}
}
