package prog

import (
	"errors"
	"fmt"
	"strings"
)

// Compile error kinds. Every *Error wraps exactly one of these, so callers
// can test for a kind with errors.Is.
var (
	// ErrUnterminatedClass indicates a [ without a matching ].
	ErrUnterminatedClass = errors.New("no closing square bracket")

	// ErrEmptyClass indicates [] or [^].
	ErrEmptyClass = errors.New("empty square brackets")

	// ErrInvalidCharacter indicates a byte rejected by the printable-only
	// policy.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrRangeOutOfOrder indicates a class range whose start is not below
	// its end, such as [b-a].
	ErrRangeOutOfOrder = errors.New("range out of order")

	// ErrInvalidAlternation indicates a | at the start of the pattern.
	ErrInvalidAlternation = errors.New("invalid or")

	// ErrInvalidGroupNesting indicates a nested ( or an unmatched ).
	ErrInvalidGroupNesting = errors.New("invalid bracket nesting")
)

// Error is a single compile error located in the pattern.
type Error struct {
	Pattern string
	Message string
	// Pos is the byte offset of the failure in Pattern. It equals
	// len(Pattern) when the pattern ended too early.
	Pos  int
	Kind error
}

func newError(pattern string, kind error, pos int) *Error {
	return &Error{
		Pattern: pattern,
		Message: kind.Error(),
		Pos:     pos,
		Kind:    kind,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("glob: %s at offset %d in %q", e.Message, e.Pos, e.Pattern)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Diagnostic renders a caret-style diagnostic: the message, then the
// pattern with the offending byte enclosed in > and <.
//
// Example:
//
//	"range out of order : [z->a<]"
func (e *Error) Diagnostic() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString(" : ")

	pos := min(max(e.Pos, 0), len(e.Pattern))
	sb.WriteString(e.Pattern[:pos])
	sb.WriteByte('>')
	if pos < len(e.Pattern) {
		sb.WriteByte(e.Pattern[pos])
	}
	sb.WriteByte('<')
	if pos+1 < len(e.Pattern) {
		sb.WriteString(e.Pattern[pos+1:])
	}
	return sb.String()
}

// ErrorList collects every error found in one compilation pass, in pattern
// order.
type ErrorList []*Error

// Error implements the error interface. It reports the first error and the
// number of further errors.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "glob: no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Unwrap returns the individual errors, for errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
