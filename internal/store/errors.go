package store

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned by Update when a batch record has no
// counterpart in the store. Batches come from the store itself, so this
// indicates a programming error rather than bad input.
var ErrRecordNotFound = errors.New("record not found")

// ParseError reports a data file line whose rating could not be parsed.
type ParseError struct {
	Path string // data file
	Line int    // 1-based line number
	Text string // raw line content
	Err  error  // underlying parse failure
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v (line %q)", e.Path, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
