package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP status codes; everything else is treated as an internal error.
var (
	// ErrNotFound is returned when an event, gift, or invitation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned on ownership violations, e.g. a non-creator
	// requesting the dashboard or a non-planner confirming a gift.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned on state-machine violations: a gift that is no
	// longer PLANNED, a duplicate event key, or a lost compare-and-swap.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput is returned when the request is structurally valid but
	// semantically rejected (e.g. unknown RSVP response, negative price).
	ErrInvalidInput = errors.New("invalid input")
)
