package query

import "errors"

// Sentinel errors of the selection engine. Evaluation fails fast on the
// first offending criterion; narrowing is always computed into a fresh view,
// so a failed call leaves the input view untouched.
var (
	// ErrIndexOutOfRange reports a positional local index past the end of
	// the current view.
	ErrIndexOutOfRange = errors.New("local index out of range")

	// ErrUnsupportedOperator reports an operator that is invalid for the
	// subject, e.g. an ordering operator on an endpoint selector of an
	// undirected graph.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrInvalidOperand reports an operand of the wrong arity or shape,
	// e.g. a '_between' operand that is not a pair of vertex sets.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrTypeMismatch reports an operand whose type cannot be compared to
	// the subject's values with the requested operator.
	ErrTypeMismatch = errors.New("operand type mismatch")

	// ErrNotFound is returned by Find when no element matches.
	ErrNotFound = errors.New("no matching element")
)
