package graph

import "errors"

var (
	// ErrConstituentNotFound indicates a NodeID that was never allocated in this graph.
	ErrConstituentNotFound = errors.New("graph: constituent not found")

	// ErrConstituentNotRegistered indicates an operation that needs a
	// registered constituent was given one that is unregistered or removed.
	ErrConstituentNotRegistered = errors.New("graph: constituent not registered")

	// ErrInvalidSpan indicates an empty span or one that does not fit the tokens.
	ErrInvalidSpan = errors.New("graph: invalid span")

	// ErrInconsistent is returned by CheckConsistency when the edge table
	// and the adjacency lists disagree.
	ErrInconsistent = errors.New("graph: inconsistent edge bookkeeping")
)
