package ecs

import "errors"

// Sentinel errors returned by World/Query operations. Per the engine's
// error-handling policy, invariant violations are always typed results,
// never panics.
var (
	// ErrEntityNotFound is returned when an Entity handle is stale (version
	// mismatch) or names a slot that was never allocated.
	ErrEntityNotFound = errors.New("ecs: entity not found")

	// ErrComponentFamilyFull is returned when registering a new component
	// type would exceed MaxComponents distinct families in one World.
	ErrComponentFamilyFull = errors.New("ecs: component family limit exceeded")

	// ErrDuplicateMutableBorrow is returned when a query names the same
	// component family more than once among its mutable (Present/Optional)
	// terms.
	ErrDuplicateMutableBorrow = errors.New("ecs: query names the same component family twice")
)
