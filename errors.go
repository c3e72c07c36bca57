package coreglob

import (
	"errors"

	"github.com/coregx/coreglob/prog"
)

// Error is a syntax error at one offset of a pattern.
type Error = prog.Error

// ErrorList holds every syntax error found while compiling one pattern.
type ErrorList = prog.ErrorList

// Syntax error kinds. Use errors.Is to test a compile error for a kind.
var (
	ErrUnterminatedClass   = prog.ErrUnterminatedClass
	ErrEmptyClass          = prog.ErrEmptyClass
	ErrInvalidCharacter    = prog.ErrInvalidCharacter
	ErrRangeOutOfOrder     = prog.ErrRangeOutOfOrder
	ErrInvalidAlternation  = prog.ErrInvalidAlternation
	ErrInvalidGroupNesting = prog.ErrInvalidGroupNesting
)

// ErrCaptureIndex is returned by Glob.Capture for an index outside
// [0, NumCaptures()).
var ErrCaptureIndex = errors.New("glob: capture index out of range")
