package services

import "errors"

// Outcome kinds the handlers map to user-facing messages. Anything else
// coming out of a service is an internal failure.
var (
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrEmailTaken is returned when the email is already registered
	// (compared case-insensitively).
	ErrEmailTaken = errors.New("email already exists")

	// ErrUserNotFound is returned when no record matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for any failed login. It never
	// distinguishes an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
