package services

import "errors"

// Sentinel errors produced deliberately by the services. Handlers map them
// to HTTP statuses with errors.Is; anything else is an internal error and
// is never surfaced verbatim to the caller.
var (
	// ErrInvalidCredentials covers both unknown-user and wrong-password so
	// the response does not reveal which it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAuthenticated means the request carried no usable session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden means the actor is authenticated but not permitted.
	ErrForbidden = errors.New("not authorized")

	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername means the requested username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrValidation means required input was missing or malformed.
	ErrValidation = errors.New("invalid input")

	// ErrPayloadTooLarge means an upload exceeded the size limit.
	ErrPayloadTooLarge = errors.New("file too large")

	// ErrAdminUndeletable means the delete targeted an ADMIN user, which
	// is blocked for every actor to avoid accidental lockout.
	ErrAdminUndeletable = errors.New("cannot delete admin users")
)
