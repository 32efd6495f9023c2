package gitparse

import "fmt"

// ErrorKind classifies a recoverable parse diagnostic.
type ErrorKind string

// Parse diagnostic kinds. Each kind maps to one validation step in the
// log parser; the ref parser skips bad input silently and never reports.
const (
	// ErrMalformedRecord means a log record had fewer fields than the
	// format contract guarantees.
	ErrMalformedRecord ErrorKind = "malformed-record"
	// ErrInvalidHash means a record's own hash failed validation.
	ErrInvalidHash ErrorKind = "invalid-hash"
	// ErrInvalidDate means an author or committer date was not ISO-8601.
	ErrInvalidDate ErrorKind = "invalid-date"
)

// previewLimit caps the raw-record excerpt attached to diagnostics.
const previewLimit = 100

// ParseError is a recoverable diagnostic produced while parsing git output.
//
// A ParseError never aborts parsing: the offending record is dropped and
// the remaining input is processed (partial success). Callers typically
// surface these as warnings.
type ParseError struct {
	Kind    ErrorKind // machine-readable classification
	Message string    // human-readable description
	Record  string    // raw record excerpt, at most 100 bytes
	Field   string    // offending field name, if attributable
}

// Error implements the error interface.
func (e ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// preview truncates a raw record for attachment to a ParseError.
func preview(record string) string {
	if len(record) <= previewLimit {
		return record
	}
	return record[:previewLimit]
}
