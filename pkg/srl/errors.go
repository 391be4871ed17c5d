package srl

import "errors"

var (
	// ErrArityMismatch is returned by AddPredicateArguments when the
	// argument, relation and score slices differ in length. No state is
	// changed.
	ErrArityMismatch = errors.New("srl: argument arity mismatch")

	// ErrPredicateNotFound is returned when a constituent is not one of the
	// view's predicates.
	ErrPredicateNotFound = errors.New("srl: predicate not found")
)
