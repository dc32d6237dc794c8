package main

import "errors"

// Sentinel errors for the you-own-what-you-created model. Handlers map them
// to HTTP statuses in respondError.
var (
	// errNotFound — crop or sub-record absent. Deliberately distinct from
	// errNotOwner: a caller probing someone else's crop id learns it exists
	// but gets no data, matching the product's original behavior.
	errNotFound = errors.New("resource not found")

	// errNotOwner — the crop exists but belongs to another user.
	errNotOwner = errors.New("not authorized")

	// errValidation — bad or missing input; user-correctable, never retried.
	errValidation = errors.New("validation failed")

	// errState — operation not allowed in the crop's current status.
	errState = errors.New("invalid crop status for operation")
)
