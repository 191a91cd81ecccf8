// Package common defines shared constants and sentinel errors used across
// the album delivery pipeline. Callers should use errors.Is to match these
// values; the HTTP boundary maps them to transport status codes.
package common

import "errors"

var (
	// Request authentication errors. Unauthenticated means the credential
	// is missing entirely, Forbidden means it was present but invalid.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Configuration covers missing secrets or settings. Kept distinct from
	// auth failures so operators see an infra problem, not an attacker.
	ErrConfiguration = errors.New("configuration error")

	// Input validation errors (missing fields, bad email, path traversal).
	ErrValidation = errors.New("validation error")

	// Third-party call outcomes.
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrUpstream        = errors.New("upstream failure")

	// Object storage and record store failures.
	ErrStorage = errors.New("storage failure")

	// Link issuance with an empty bucket or key.
	ErrInvalidTarget = errors.New("invalid target")

	// Lookup misses.
	ErrNotFound = errors.New("not found")

	// Anything unexpected.
	ErrInternal = errors.New("internal error")
)
