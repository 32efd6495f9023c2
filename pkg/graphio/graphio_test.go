package graphio

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/gitlanes/pkg/commit"
	"github.com/matzehuels/gitlanes/pkg/layout"
	"github.com/matzehuels/gitlanes/pkg/repograph"
)

func h(label string) commit.Hash {
	return commit.RawHash(strings.Repeat(label, 40))
}

func testLayout(t *testing.T) *layout.Graph {
	t.Helper()
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	commits := []commit.Commit{
		{Hash: h("d"), Parents: []commit.Hash{h("b"), h("c")}, CommittedAt: when},
		{Hash: h("b"), Parents: []commit.Hash{h("a")}, CommittedAt: when},
		{Hash: h("c"), Parents: []commit.Hash{h("a")}, CommittedAt: when},
		{Hash: h("a"), CommittedAt: when},
	}
	refs := []commit.Ref{
		{Name: "main", FullName: "refs/heads/main", Hash: h("d"), Kind: commit.RefLocalBranch, IsHead: true},
		{Name: "v1", FullName: "refs/tags/v1", Hash: h("a"), Kind: commit.RefTag, IsAnnotated: true},
	}
	rg := repograph.Build(commits, refs, h("d"), "main")
	return layout.New(rg, layout.Options{ProtectedBranches: []string{"main"}})
}

func TestLayoutRoundTrip(t *testing.T) {
	g := testLayout(t)

	var buf bytes.Buffer
	if err := WriteLayout(g, &buf); err != nil {
		t.Fatalf("WriteLayout() error: %v", err)
	}

	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout() error: %v", err)
	}

	if got.TotalRows != g.TotalRows || got.TotalLanes != g.TotalLanes {
		t.Errorf("rows/lanes = %d/%d, want %d/%d", got.TotalRows, got.TotalLanes, g.TotalRows, g.TotalLanes)
	}
	if len(got.Commits) != len(g.Commits) || len(got.Edges) != len(g.Edges) {
		t.Fatalf("commits/edges = %d/%d, want %d/%d", len(got.Commits), len(got.Edges), len(g.Commits), len(g.Edges))
	}

	for i, want := range g.Commits {
		if got.Commits[i].Hash != want.Hash || got.Commits[i].Row != want.Row || got.Commits[i].Lane != want.Lane {
			t.Errorf("commit %d = %+v, want %+v", i, got.Commits[i], want)
		}
	}
	for i, want := range g.Edges {
		if got.Edges[i] != want {
			t.Errorf("edge %d = %+v, want %+v", i, got.Edges[i], want)
		}
	}
	for row, lanes := range g.ActiveLanes {
		got := got.ActiveLanes[row]
		if len(got) != len(lanes) {
			t.Errorf("ActiveLanes[%d] = %v, want %v", row, got, lanes)
		}
	}

	// Restored indices answer lookups.
	if _, ok := got.CommitByHash(h("d")); !ok {
		t.Error("CommitByHash(d) missed after round trip")
	}
}

func TestRefFlagsSurviveRoundTrip(t *testing.T) {
	g := testLayout(t)

	var buf bytes.Buffer
	if err := WriteLayout(g, &buf); err != nil {
		t.Fatalf("WriteLayout() error: %v", err)
	}
	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout() error: %v", err)
	}

	d, _ := got.CommitByHash(h("d"))
	if len(d.Refs) != 1 {
		t.Fatalf("refs at d = %d, want 1", len(d.Refs))
	}
	r := d.Refs[0]
	if r.Name != "main" || !r.IsHead || !r.IsProtected || r.Kind != commit.RefLocalBranch {
		t.Errorf("ref = %+v", r)
	}

	a, _ := got.CommitByHash(h("a"))
	if len(a.Refs) != 1 || !a.Refs[0].IsAnnotated || a.Refs[0].Kind != commit.RefTag {
		t.Errorf("tag ref = %+v", a.Refs)
	}
}

func TestReadLayoutRejectsUnknownEnums(t *testing.T) {
	bad := `{"commits":[],"edges":[{"id":"x","from":"a","to":"b","type":"wobbly"}],"total_rows":0,"total_lanes":0}`
	if _, err := ReadLayout(strings.NewReader(bad)); err == nil {
		t.Error("ReadLayout(bad edge type) = nil error, want failure")
	}

	bad = `{"commits":[{"hash":"a","row":0,"lane":0,"refs":[{"name":"x","kind":"wormhole"}]}],"edges":[]}`
	if _, err := ReadLayout(strings.NewReader(bad)); err == nil {
		t.Error("ReadLayout(bad ref kind) = nil error, want failure")
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	g := testLayout(t)
	path := t.TempDir() + "/layout.json"

	if err := WriteLayoutFile(g, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if got.TotalRows != g.TotalRows {
		t.Errorf("TotalRows = %d, want %d", got.TotalRows, g.TotalRows)
	}
}
