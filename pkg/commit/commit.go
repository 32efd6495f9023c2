// Package commit defines the immutable data model for Git history:
// commit hashes, commits, identities, and refs.
//
// All types in this package are value types constructed once by the parser
// (see [github.com/matzehuels/gitlanes/pkg/gitparse]) and never mutated.
// Higher layers index them ([github.com/matzehuels/gitlanes/pkg/repograph])
// and lay them out ([github.com/matzehuels/gitlanes/pkg/layout]).
package commit

import "time"

// Identity is an author or committer signature. Either field may be empty;
// Git does not guarantee both are set.
type Identity struct {
	Name  string
	Email string
}

// Commit is a single commit record as reported by git log.
//
// Parents are listed in Git's parent order: the first parent is the branch
// the commit happened on (the mainline continuation), later parents are the
// merged-in branches. Git deduplicates parents at the source, so the slice
// contains no repeats.
//
// The zero value is not a usable commit; Hash must be set.
type Commit struct {
	Hash        Hash
	Parents     []Hash
	Author      Identity
	Committer   Identity
	AuthoredAt  time.Time
	CommittedAt time.Time
	Subject     string
	Body        string
}

// IsMerge reports whether the commit has two or more parents.
func (c Commit) IsMerge() bool { return len(c.Parents) >= 2 }

// FirstParent returns the mainline parent and true, or the zero hash and
// false for a root commit.
func (c Commit) FirstParent() (Hash, bool) {
	if len(c.Parents) == 0 {
		return "", false
	}
	return c.Parents[0], true
}
