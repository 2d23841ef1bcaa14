package service

import "errors"

// Error kinds returned by the ingestion pipeline. Handlers translate
// these to HTTP responses in one place; the pipeline itself never sees
// a status code.
var (
	// ErrUnauthenticated is a write attempt without a resolved identity
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAssetStagingFailed is an upstream object-store failure; no post
	// record exists when this is returned
	ErrAssetStagingFailed = errors.New("asset staging failed")

	// ErrPersistenceFailed is a store failure after all preconditions
	// held; propagated, never retried
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrNotFound is a read of a record that does not exist
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is a signup with an already-registered email
	ErrEmailTaken = errors.New("email already registered")

	// ErrBadCredentials is a signin with an unknown email or wrong password
	ErrBadCredentials = errors.New("incorrect email or password")

	// ErrInvalidInput is a request missing a required field
	ErrInvalidInput = errors.New("invalid input")
)
