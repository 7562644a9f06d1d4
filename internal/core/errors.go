package core

import "errors"

var (
	// ErrNotFound is returned when the target entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAvailable is returned when an auction cannot be purchased
	// because it is already sold or cancelled. Retryable by re-listing,
	// never a server error.
	ErrNotAvailable = errors.New("auction not available")

	// ErrForbidden is returned when the role policy rejects the acting
	// principal before any store access happens.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for malformed input or an illegal
	// status transition.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a guard on current state fails:
	// duplicate handover, re-deciding a decided billing entry,
	// accepting an order that is not assigned to the caller.
	ErrConflict = errors.New("conflict")
)
