package gitparse

import (
	"regexp"
	"strings"
)

// Protected matches branch names against configured protection patterns.
//
// Each pattern is either an exact branch name ("main") or a glob where "*"
// matches any run of characters ("release/*"). Patterns are compiled once;
// matching is O(patterns) per branch.
type Protected struct {
	patterns []*regexp.Regexp
}

// NewProtected compiles a set of protection patterns.
// An empty or nil pattern list yields a matcher that protects nothing.
func NewProtected(patterns []string) *Protected {
	p := &Protected{}
	for _, pat := range patterns {
		// Escape everything, then re-open the wildcard: "release/*"
		// becomes ^release/.*$. QuoteMeta output always compiles.
		quoted := strings.ReplaceAll(regexp.QuoteMeta(pat), `\*`, `.*`)
		re, err := regexp.Compile("^" + quoted + "$")
		if err != nil {
			continue
		}
		p.patterns = append(p.patterns, re)
	}
	return p
}

// Match reports whether any pattern matches the branch's short name.
func (p *Protected) Match(name string) bool {
	if p == nil {
		return false
	}
	for _, re := range p.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
