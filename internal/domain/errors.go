package domain

import "errors"

// Sentinel errors shared across repositories and services. Callers test with
// errors.Is after unwrapping.
var (
	// ErrNotFound indicates a lookup by id matched no row.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates user input that must be corrected before the
	// action can proceed (empty title, unparsable time, start >= end).
	ErrValidation = errors.New("validation failed")

	// ErrBadPlacement indicates a malformed canonical placement string.
	// This is an invariant violation, not a user-facing case: canonical
	// strings are only ever produced by Placement.Encode.
	ErrBadPlacement = errors.New("malformed placement")

	// ErrStaleMembership indicates a reorder referenced an id that is no
	// longer part of the partition. The ordering engine returns it without
	// writing anything; the service layer dissolves it into a no-op so it
	// never reaches the user.
	ErrStaleMembership = errors.New("stale partition membership")
)
