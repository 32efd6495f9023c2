package gitparse

import (
	"strings"

	"github.com/matzehuels/gitlanes/pkg/commit"
)

// Ref namespace prefixes dispatched by ParseRefs.
const (
	prefixHeads   = "refs/heads/"
	prefixRemotes = "refs/remotes/"
	prefixTags    = "refs/tags/"
)

// ParseRefs parses for-each-ref output into refs.
//
// The buffer must be produced with the format
//
//	%(objectname) %(refname) %(objecttype)
//
// one ref per line. headBranch is the currently checked-out branch (empty
// on detached HEAD) and marks the matching local branch IsHead. protected
// flags local and remote branches whose short name matches; pass nil to
// protect nothing.
//
// Malformed lines, refs outside the three known namespaces, and symbolic
// remote HEADs (origin/HEAD) are skipped silently; ref parsing has no
// error surface. Targets are not checked against any commit set, so refs
// into unloaded history survive.
func ParseRefs(buf []byte, headBranch string, protected *Protected) []commit.Ref {
	var refs []commit.Ref

	for _, line := range strings.Split(string(buf), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}

		hash := strings.ToLower(parts[0])
		if !commit.ValidHash(hash) {
			continue
		}

		fullName, objType := parts[1], parts[2]
		if ref, ok := classifyRef(commit.RawHash(hash), fullName, objType, headBranch, protected); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// classifyRef dispatches a refname into one of the three ref kinds.
// Returns false for namespaces the visualizer does not surface
// (refs/stash, refs/notes, replace refs).
func classifyRef(hash commit.Hash, fullName, objType, headBranch string, protected *Protected) (commit.Ref, bool) {
	switch {
	case strings.HasPrefix(fullName, prefixHeads):
		name := strings.TrimPrefix(fullName, prefixHeads)
		return commit.Ref{
			Name:        name,
			FullName:    fullName,
			Hash:        hash,
			Kind:        commit.RefLocalBranch,
			IsHead:      name == headBranch,
			IsProtected: protected.Match(name),
		}, true

	case strings.HasPrefix(fullName, prefixRemotes):
		name := strings.TrimPrefix(fullName, prefixRemotes)
		// origin/HEAD is a symbolic alias for the remote's default
		// branch, not a branch of its own.
		if strings.HasSuffix(name, "/HEAD") {
			return commit.Ref{}, false
		}
		remote := name
		if i := strings.Index(name, "/"); i >= 0 {
			remote = name[:i]
		}
		return commit.Ref{
			Name:        name,
			FullName:    fullName,
			Hash:        hash,
			Kind:        commit.RefRemoteBranch,
			Remote:      remote,
			IsProtected: protected.Match(name),
		}, true

	case strings.HasPrefix(fullName, prefixTags):
		name := strings.TrimPrefix(fullName, prefixTags)
		return commit.Ref{
			Name:     name,
			FullName: fullName,
			Hash:     hash,
			Kind:     commit.RefTag,
			// Lightweight tags point straight at commits and report
			// "commit" as their object type.
			IsAnnotated: objType == "tag",
		}, true
	}
	return commit.Ref{}, false
}

// Head is the resolved HEAD state of a repository.
type Head struct {
	// Ref is the short branch name, empty on detached HEAD or an
	// empty repository.
	Ref string
	// Hash is the commit HEAD points at, zero on an empty repository.
	Hash commit.Hash
}

// ParseHead combines the output of `git symbolic-ref --short HEAD` and
// `git rev-parse HEAD` into a Head. Both inputs may be empty.
func ParseHead(symbolicRef, revParse string) Head {
	h := Head{Ref: strings.TrimSpace(symbolicRef)}
	if raw := strings.ToLower(strings.TrimSpace(revParse)); commit.ValidHash(raw) {
		h.Hash = commit.RawHash(raw)
	}
	return h
}
