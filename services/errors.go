package services

import "errors"

var (
	// ErrInvalidDestination means the destination failed URL validation.
	ErrInvalidDestination = errors.New("destination is not a valid URL")

	// ErrUnauthenticated means no caller identity was supplied.
	ErrUnauthenticated = errors.New("missing caller identity")

	// ErrAllocationExhausted means the retry budget ran out without a
	// unique slug. The whole request is safe to retry.
	ErrAllocationExhausted = errors.New("could not allocate a unique slug")

	// ErrSlugNotFound means no link maps to the requested slug or id.
	ErrSlugNotFound = errors.New("link not found")

	// ErrForbidden means the requester does not own the link.
	ErrForbidden = errors.New("link belongs to another user")

	// ErrStoreUnavailable wraps unexpected store failures.
	ErrStoreUnavailable = errors.New("store unavailable")
)
