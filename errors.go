package huffman

import (
	"fmt"

	"github.com/pkg/errors"
)

// FormatError is returned when a serialized code table or a packed stream is
// malformed.
type FormatError struct {
	// Msg describes what is wrong with the input.
	Msg string

	// Err holds the underlying error, if any.
	Err error
}

// Error fulfills the error interface.
func (e *FormatError) Error() string {
	if e.Err == nil {
		return "huffman: " + e.Msg
	}
	return "huffman: " + e.Msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying error, if any.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// FatalError is returned when an internal invariant is violated, such as
// packing a byte that has no code in the table.  It indicates misuse of the
// package rather than bad input.
type FatalError struct {
	Msg string
}

// Error fulfills the error interface.
func (e *FatalError) Error() string {
	return "huffman: fatal: " + e.Msg
}

var (
	_ error = (*FormatError)(nil)
	_ error = (*FatalError)(nil)
)

func formatErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&FormatError{Msg: fmt.Sprintf(format, args...)})
}

func wrapFormatError(err error, format string, args ...interface{}) error {
	return errors.WithStack(&FormatError{Msg: fmt.Sprintf(format, args...), Err: err})
}

func fatalErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&FatalError{Msg: fmt.Sprintf(format, args...)})
}
