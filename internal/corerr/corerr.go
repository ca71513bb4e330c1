// Package corerr defines the typed error taxonomy shared by the cover
// solver, placement generator, assembly reducer, and disassembler.
//
// Every error returned by the core carries a Kind so callers can
// distinguish a malformed request (InputShape), an expected "no solution
// under this configuration" outcome (Infeasible), a feature the core
// explicitly refuses (Unsupported), or an attempt to reuse a single-shot
// component (Reuse) without string-matching messages.
package corerr

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// InputShape covers malformed input: row/column length mismatch,
	// an invalid column index, a missing goal piece, an empty piece set.
	InputShape Kind = iota
	// Infeasible covers expected outcomes under a bad configuration:
	// voxel-count mismatch, an unplaceable piece, an unsatisfiable
	// minimum count. These are not bugs.
	Infeasible
	// Unsupported covers features whose semantics the core explicitly
	// refuses, such as optional voxels on a non-goal piece.
	Unsupported
	// Reuse covers an attempt to re-run a single-shot component.
	Reuse
)

func (k Kind) String() string {
	switch k {
	case InputShape:
		return "input-shape"
	case Infeasible:
		return "infeasible"
	case Unsupported:
		return "unsupported"
	case Reuse:
		return "reuse"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every core package.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
