// Package gitparse converts raw git command output into the commit model.
//
// The package consumes pre-captured stdout buffers (see
// [github.com/matzehuels/gitlanes/pkg/gitexec]) and returns value types from
// [github.com/matzehuels/gitlanes/pkg/commit]. Parsing is total: malformed
// records are dropped and reported as [ParseError] values while the rest of
// the buffer is processed. Nothing here shells out or touches the terminal.
//
// # Log format
//
// The log buffer must be produced with the format specifier
//
//	%H%x00%P%x00%an%x00%ae%x00%aI%x00%cn%x00%ce%x00%cI%x00%s%x00%b%x01
//
// Fields are NUL-separated and records are terminated by 0x01, which allows
// commit subjects and bodies to contain any byte except those two
// separators. Git inserts a newline between records; the parser trims it.
package gitparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/gitlanes/pkg/commit"
)

const (
	recordSep = "\x01"
	fieldSep  = "\x00"

	// minFields is the smallest legal field count for a record: all fields
	// up to the subject. The body may be absent entirely.
	minFields = 9
)

// Field indices within a log record.
const (
	fieldHash = iota
	fieldParents
	fieldAuthorName
	fieldAuthorEmail
	fieldAuthorDate
	fieldCommitterName
	fieldCommitterEmail
	fieldCommitDate
	fieldSubject
	fieldBody
)

// LogResult holds the outcome of parsing a log buffer.
// Commits and Errors are independent: a buffer with one bad record among
// many good ones yields both.
type LogResult struct {
	Commits []commit.Commit
	Errors  []ParseError
}

// ParseLog parses git log output in the NUL/0x01-delimited format into
// commits, preserving input (topological) order.
//
// Records that violate the format contract are skipped and reported in
// LogResult.Errors; parsing always continues. Parent hashes that fail
// validation are dropped individually without failing their record, so a
// grafted or corrupt parent list degrades to a partial one.
func ParseLog(buf []byte) LogResult {
	var res LogResult

	for _, record := range strings.Split(string(buf), recordSep) {
		// Git emits a newline between records; strip it along with any
		// other surrounding whitespace before field-splitting.
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		c, perr := parseRecord(record)
		if perr != nil {
			res.Errors = append(res.Errors, *perr)
			continue
		}
		res.Commits = append(res.Commits, c)
	}
	return res
}

// parseRecord converts one delimited record into a commit.
// Returns a ParseError (and a zero commit) when the record is dropped.
func parseRecord(record string) (commit.Commit, *ParseError) {
	fields := strings.Split(record, fieldSep)
	if len(fields) < minFields {
		return commit.Commit{}, &ParseError{
			Kind:    ErrMalformedRecord,
			Message: fmt.Sprintf("expected at least %d fields, got %d", minFields, len(fields)),
			Record:  preview(record),
		}
	}

	hash := fields[fieldHash]
	if !commit.ValidHash(hash) {
		return commit.Commit{}, &ParseError{
			Kind:    ErrInvalidHash,
			Message: fmt.Sprintf("malformed commit hash %q", preview(hash)),
			Record:  preview(record),
			Field:   "hash",
		}
	}

	authoredAt, err := parseDate(fields[fieldAuthorDate])
	if err != nil {
		return commit.Commit{}, &ParseError{
			Kind:    ErrInvalidDate,
			Message: fmt.Sprintf("bad author date %q", fields[fieldAuthorDate]),
			Record:  preview(record),
			Field:   "author-date",
		}
	}
	committedAt, err := parseDate(fields[fieldCommitDate])
	if err != nil {
		return commit.Commit{}, &ParseError{
			Kind:    ErrInvalidDate,
			Message: fmt.Sprintf("bad commit date %q", fields[fieldCommitDate]),
			Record:  preview(record),
			Field:   "commit-date",
		}
	}

	c := commit.Commit{
		Hash:        commit.RawHash(hash),
		Parents:     parseParents(fields[fieldParents]),
		Author:      commit.Identity{Name: fields[fieldAuthorName], Email: fields[fieldAuthorEmail]},
		Committer:   commit.Identity{Name: fields[fieldCommitterName], Email: fields[fieldCommitterEmail]},
		AuthoredAt:  authoredAt,
		CommittedAt: committedAt,
		Subject:     fields[fieldSubject],
	}

	// Everything past the subject is body. A body containing 0x00 would
	// have been split apart above; rejoin it before trimming.
	if len(fields) > fieldBody {
		c.Body = strings.TrimSpace(strings.Join(fields[fieldBody:], fieldSep))
	}
	return c, nil
}

// parseParents splits the space-separated parent list, dropping entries
// that fail hash validation rather than failing the whole record.
func parseParents(field string) []commit.Hash {
	var parents []commit.Hash
	for _, p := range strings.Fields(field) {
		p = strings.ToLower(p)
		if commit.ValidHash(p) {
			parents = append(parents, commit.RawHash(p))
		}
	}
	return parents
}

// parseDate parses Git's %aI/%cI strict ISO-8601 timestamps.
func parseDate(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
