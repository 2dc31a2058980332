package services

import "errors"

// Failure taxonomy shared by all services. Handlers map these onto HTTP
// status codes with errors.Is; nothing here is retried internally.
var (
	// ErrUnauthorized means the actor lacks the role an operation requires.
	ErrUnauthorized = errors.New("insufficient privileges")

	// ErrNotFound means a referenced user, report, comment or tag does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means a required field is empty or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState means the operation is illegal for the aggregate's
	// current state (blocking an admin, re-blocking a blocked user,
	// assigning a resolved report, following yourself).
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidCredentials covers both wrong credentials and blocked
	// accounts. The two are deliberately indistinguishable so login
	// responses cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken = errors.New("email already registered")
)
