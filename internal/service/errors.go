package service

import "errors"

var (
	// ErrDuplicateIdentity is returned when the username or email is already registered
	ErrDuplicateIdentity = errors.New("a user with the given username or email is already registered")
	// ErrInvalidToken is returned when no user is waiting for the given verification token
	ErrInvalidToken = errors.New("invalid or expired verification token")
	// ErrMissingCredentials is returned when a login attempt lacks a username or password
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrAuthFailure is returned when the username is unknown or the password doesn't match
	ErrAuthFailure = errors.New("password or username is incorrect")
	// ErrUnverified is returned when a user tries to log in before verifying their email
	ErrUnverified = errors.New("email address is not verified")
	// ErrUserNotFound is returned when a user looked up by ID doesn't exist
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError wraps the validator error that rejected user input
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// OpError is an infrastructure failure. Its message names the failed step
// and is safe to show to users, the cause is only reachable through Unwrap
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return "failed to " + e.Op }
func (e *OpError) Unwrap() error { return e.Err }

// TransportError is returned when a mail couldn't be handed to the mail server.
// Like OpError it keeps the cause out of the message
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "failed to send verification email"
}

func (e *TransportError) Unwrap() error { return e.Err }
