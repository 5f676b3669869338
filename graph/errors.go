package graph

import "errors"

// Sentinel errors for the routing core. Handlers map these to HTTP statuses;
// nothing in this package retries or swallows them.
var (
	// ErrNotFound means a referenced intersection or street id does not
	// exist in the current snapshot.
	ErrNotFound = errors.New("not found in graph")

	// ErrUnreachable means both endpoints exist but no connecting path
	// survives the active constraints. Distinct from ErrNotFound so a
	// caller can retry without the ADA restriction.
	ErrUnreachable = errors.New("no path exists")

	// ErrEmptyGraph means the graph has no intersections loaded at all.
	ErrEmptyGraph = errors.New("graph has no intersections")
)
