package nodelink

import (
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

func testGraph() *layout.Graph {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	commits := []commit.Commit{
		{Hash: h("d"), Parents: []commit.Hash{h("b"), h("c")}, CommittedAt: when},
		{Hash: h("b"), Parents: []commit.Hash{h("a")}, CommittedAt: when},
		{Hash: h("c"), Parents: []commit.Hash{h("a")}, CommittedAt: when},
		{Hash: h("a"), CommittedAt: when},
	}
	refs := []commit.Ref{
		{Name: "main", FullName: "refs/heads/main", Hash: h("d"), Kind: commit.RefLocalBranch, IsHead: true},
	}
	return layout.New(repograph.Build(commits, refs, h("d"), "main"), layout.Options{})
}

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	if !strings.HasPrefix(dot, "digraph history {") {
		t.Errorf("dot does not open a digraph: %.40q", dot)
	}
	for _, label := range []string{"d", "b", "c", "a"} {
		if !strings.Contains(dot, `"`+h(label).Short()+`"`) {
			t.Errorf("dot missing node %s", label)
		}
	}
	if got := strings.Count(dot, " -> "); got != 4 {
		t.Errorf("dot has %d edges, want 4", got)
	}
}

func TestToDOTMergeStyling(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	if !strings.Contains(dot, "peripheries=2") {
		t.Error("merge commit not drawn with doubled outline")
	}
	if !strings.Contains(dot, "[style=dashed]") {
		t.Error("merge edge not dashed")
	}
	if !strings.Contains(dot, "main") {
		t.Error("branch tip label missing")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testGraph(), Options{Detailed: true})
	if !strings.Contains(dot, "row 0, lane 0") {
		t.Error("detailed labels missing coordinates")
	}
}
