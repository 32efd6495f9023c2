package errors

import (
	"strings"
	"unicode"
)

// Output formats accepted by the render surfaces (CLI and API).
var validFormats = map[string]bool{
	"term": true,
	"json": true,
	"svg":  true,
	"dot":  true,
	"gv":   true,
}

// ValidateFormat validates a requested output format.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "output format cannot be empty")
	}
	if !validFormats[format] {
		return New(ErrCodeInvalidFormat, "unknown output format %q (term, json, svg, dot, gv)", format)
	}
	return nil
}

// ValidateRepoPath validates a repository path received from user input.
// It rejects paths that could not possibly name a repository and keeps
// null bytes and control characters out of subprocess arguments.
func ValidateRepoPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidRepo, "repository path cannot be empty")
	}
	if len(path) > 4096 {
		return New(ErrCodeInvalidRepo, "repository path too long")
	}
	for _, r := range path {
		if r == 0 || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidRepo, "repository path contains control characters")
		}
	}
	return nil
}

// ValidateRowRange validates a viewport row range from query parameters.
func ValidateRowRange(start, end int) error {
	if start < 0 {
		return New(ErrCodeInvalidRange, "start row must not be negative")
	}
	if end < start {
		return New(ErrCodeInvalidRange, "end row %d precedes start row %d", end, start)
	}
	return nil
}

// ValidateRefName validates a ref name received from user input before it
// is resolved against the graph. Git's own rules are stricter; this only
// blocks obviously hostile input.
func ValidateRefName(name string) error {
	if name == "" {
		return New(ErrCodeRefNotFound, "ref name cannot be empty")
	}
	if strings.ContainsAny(name, "\x00\n") || strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "ref name contains invalid characters")
	}
	return nil
}
