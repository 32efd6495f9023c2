package gitparse

import (
	"strings"
	"testing"

	"github.com/matzehuels/gitlanes/pkg/commit"
)

func refLine(hash, fullName, objType string) string {
	return hash + " " + fullName + " " + objType + "\n"
}

func TestParseRefsDispatch(t *testing.T) {
	buf := refLine(fakeHash("a"), "refs/heads/main", "commit") +
		refLine(fakeHash("b"), "refs/remotes/origin/main", "commit") +
		refLine(fakeHash("c"), "refs/tags/v1.0.0", "tag") +
		refLine(fakeHash("d"), "refs/tags/v0.9.0", "commit") +
		refLine(fakeHash("e"), "refs/remotes/origin/HEAD", "commit") +
		refLine(fakeHash("f"), "refs/stash", "commit")

	refs := ParseRefs([]byte(buf), "main", nil)
	if len(refs) != 4 {
		t.Fatalf("ParseRefs() = %d refs, want 4", len(refs))
	}

	local := refs[0]
	if local.Kind != commit.RefLocalBranch || local.Name != "main" || !local.IsHead {
		t.Errorf("local = %+v, want head branch main", local)
	}
	if local.FullName != "refs/heads/main" {
		t.Errorf("FullName = %q", local.FullName)
	}

	remote := refs[1]
	if remote.Kind != commit.RefRemoteBranch || remote.Name != "origin/main" {
		t.Errorf("remote = %+v", remote)
	}
	if remote.Remote != "origin" {
		t.Errorf("Remote = %q, want origin", remote.Remote)
	}
	if remote.IsHead {
		t.Error("remote branch IsHead = true, want false")
	}

	annotated := refs[2]
	if annotated.Kind != commit.RefTag || !annotated.IsAnnotated {
		t.Errorf("annotated tag = %+v", annotated)
	}

	lightweight := refs[3]
	if lightweight.IsAnnotated {
		t.Error("lightweight tag IsAnnotated = true, want false")
	}
}

func TestParseRefsSkipsMalformedLines(t *testing.T) {
	buf := "nonsense\n" +
		refLine("tooshort", "refs/heads/x", "commit") +
		refLine(fakeHash("a"), "refs/heads/ok", "commit")

	refs := ParseRefs([]byte(buf), "", nil)
	if len(refs) != 1 || refs[0].Name != "ok" {
		t.Errorf("ParseRefs() = %+v, want only 'ok'", refs)
	}
}

func TestParseRefsProtection(t *testing.T) {
	protected := NewProtected([]string{"main", "release/*"})
	buf := refLine(fakeHash("a"), "refs/heads/main", "commit") +
		refLine(fakeHash("b"), "refs/heads/release/1.0", "commit") +
		refLine(fakeHash("c"), "refs/heads/feature/x", "commit")

	refs := ParseRefs([]byte(buf), "", protected)
	want := map[string]bool{"main": true, "release/1.0": true, "feature/x": false}
	for _, r := range refs {
		if r.IsProtected != want[r.Name] {
			t.Errorf("IsProtected(%s) = %v, want %v", r.Name, r.IsProtected, want[r.Name])
		}
	}
}

func TestParseHead(t *testing.T) {
	tests := []struct {
		name        string
		symbolicRef string
		revParse    string
		wantRef     string
		wantHash    commit.Hash
	}{
		{
			name:        "attached head",
			symbolicRef: "main\n",
			revParse:    fakeHash("a") + "\n",
			wantRef:     "main",
			wantHash:    commit.RawHash(fakeHash("a")),
		},
		{
			name:     "detached head",
			revParse: strings.ToUpper(fakeHash("b")),
			wantHash: commit.RawHash(fakeHash("b")),
		},
		{
			name: "empty repository",
		},
		{
			name:     "garbage rev-parse",
			revParse: "HEAD\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := ParseHead(tt.symbolicRef, tt.revParse)
			if h.Ref != tt.wantRef {
				t.Errorf("Ref = %q, want %q", h.Ref, tt.wantRef)
			}
			if h.Hash != tt.wantHash {
				t.Errorf("Hash = %q, want %q", h.Hash, tt.wantHash)
			}
		})
	}
}
