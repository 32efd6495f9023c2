package gitparse

import (
	"strings"
	"testing"

	"github.com/matzehuels/gitlanes/pkg/commit"
)

// fakeHash returns c repeated to a full 40-character hash, the convention
// used throughout the layout tests as well.
func fakeHash(c string) string { return strings.Repeat(c, 40) }

// record assembles one delimited log record from its fields.
func record(fields ...string) string {
	return strings.Join(fields, "\x00") + "\x01"
}

func validRecord(hash string, parents ...string) string {
	return record(
		hash,
		strings.Join(parents, " "),
		"Ada Lovelace", "ada@example.com", "2024-03-01T10:00:00+01:00",
		"Charles Babbage", "charles@example.com", "2024-03-01T10:05:00+01:00",
		"Add analytical engine",
		"Longer description.",
	)
}

func TestParseLogSingleCommit(t *testing.T) {
	res := ParseLog([]byte(validRecord(fakeHash("a"), fakeHash("b"))))

	if len(res.Errors) != 0 {
		t.Fatalf("ParseLog() errors = %v, want none", res.Errors)
	}
	if len(res.Commits) != 1 {
		t.Fatalf("ParseLog() commits = %d, want 1", len(res.Commits))
	}

	c := res.Commits[0]
	if c.Hash != commit.RawHash(fakeHash("a")) {
		t.Errorf("Hash = %s, want %s", c.Hash, fakeHash("a"))
	}
	if len(c.Parents) != 1 || c.Parents[0] != commit.RawHash(fakeHash("b")) {
		t.Errorf("Parents = %v, want [%s]", c.Parents, fakeHash("b"))
	}
	if c.Author.Name != "Ada Lovelace" || c.Author.Email != "ada@example.com" {
		t.Errorf("Author = %+v", c.Author)
	}
	if c.Subject != "Add analytical engine" {
		t.Errorf("Subject = %q", c.Subject)
	}
	if c.Body != "Longer description." {
		t.Errorf("Body = %q", c.Body)
	}
	if c.AuthoredAt.IsZero() || c.CommittedAt.IsZero() {
		t.Error("timestamps not parsed")
	}
}

func TestParseLogBodyWithSeparators(t *testing.T) {
	// A body containing the field separator must be rejoined, not truncated.
	rec := record(
		fakeHash("a"), "",
		"a", "a@x", "2024-01-01T00:00:00Z",
		"c", "c@x", "2024-01-01T00:00:00Z",
		"subject",
		"body part one", "body part two",
	)
	res := ParseLog([]byte(rec))
	if len(res.Commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(res.Commits))
	}
	want := "body part one\x00body part two"
	if got := res.Commits[0].Body; got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}

func TestParseLogMissingBody(t *testing.T) {
	rec := record(
		fakeHash("a"), "",
		"a", "a@x", "2024-01-01T00:00:00Z",
		"c", "c@x", "2024-01-01T00:00:00Z",
		"subject only",
	)
	res := ParseLog([]byte(rec))
	if len(res.Commits) != 1 || len(res.Errors) != 0 {
		t.Fatalf("commits = %d, errors = %v, want 1 commit and no errors", len(res.Commits), res.Errors)
	}
	if res.Commits[0].Body != "" {
		t.Errorf("Body = %q, want empty", res.Commits[0].Body)
	}
}

func TestParseLogInvalidDate(t *testing.T) {
	rec := record(
		fakeHash("a"), "",
		"a", "a@x", "yesterday",
		"c", "c@x", "2024-01-01T00:00:00Z",
		"subject",
	)
	res := ParseLog([]byte(rec))
	if len(res.Commits) != 0 {
		t.Errorf("commits = %d, want 0", len(res.Commits))
	}
	if len(res.Errors) != 1 || res.Errors[0].Kind != ErrInvalidDate {
		t.Fatalf("errors = %v, want one invalid-date", res.Errors)
	}
	if res.Errors[0].Field != "author-date" {
		t.Errorf("Field = %q, want author-date", res.Errors[0].Field)
	}
}

func TestParseLogPartialSuccess(t *testing.T) {
	// First record has a bad hash; the second must still parse.
	bad := record(
		"UPPERCASE-NOT-A-HASH", "",
		"a", "a@x", "2024-01-01T00:00:00Z",
		"c", "c@x", "2024-01-01T00:00:00Z",
		"bad",
	)
	good := validRecord(fakeHash("b"))

	res := ParseLog([]byte(bad + "\n" + good))
	if len(res.Commits) != 1 {
		t.Errorf("commits = %d, want 1", len(res.Commits))
	}
	if len(res.Errors) != 1 || res.Errors[0].Kind != ErrInvalidHash {
		t.Fatalf("errors = %v, want one invalid-hash", res.Errors)
	}
}

func TestParseLogMalformedRecord(t *testing.T) {
	res := ParseLog([]byte("just a few\x00fields\x01"))
	if len(res.Commits) != 0 {
		t.Errorf("commits = %d, want 0", len(res.Commits))
	}
	if len(res.Errors) != 1 || res.Errors[0].Kind != ErrMalformedRecord {
		t.Fatalf("errors = %v, want one malformed-record", res.Errors)
	}
}

func TestParseLogDropsInvalidParents(t *testing.T) {
	rec := record(
		fakeHash("a"),
		fakeHash("b")+" nothex "+strings.ToUpper(fakeHash("c")),
		"a", "a@x", "2024-01-01T00:00:00Z",
		"c", "c@x", "2024-01-01T00:00:00Z",
		"subject",
	)
	res := ParseLog([]byte(rec))
	if len(res.Commits) != 1 {
		t.Fatalf("commits = %d, want 1", len(res.Commits))
	}
	// The uppercase parent survives via lowercasing; the garbage one is dropped.
	want := []commit.Hash{commit.RawHash(fakeHash("b")), commit.RawHash(fakeHash("c"))}
	got := res.Commits[0].Parents
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Parents = %v, want %v", got, want)
	}
}

func TestParseLogEmptyBuffer(t *testing.T) {
	res := ParseLog(nil)
	if len(res.Commits) != 0 || len(res.Errors) != 0 {
		t.Errorf("ParseLog(nil) = %d commits, %d errors, want 0, 0", len(res.Commits), len(res.Errors))
	}
}

func TestParseErrorPreviewTruncated(t *testing.T) {
	long := strings.Repeat("x", 500)
	res := ParseLog([]byte(long + "\x01"))
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(res.Errors))
	}
	if got := len(res.Errors[0].Record); got > previewLimit {
		t.Errorf("Record preview length = %d, want <= %d", got, previewLimit)
	}
}
