package service

import "errors"

var (
	// ErrNotFound is returned when a record the caller may know about is
	// missing (own account on /me, user by email on login).
	ErrNotFound = errors.New("not found")

	// ErrNotFoundOrUnauthorized conflates "project does not exist" with
	// "project is not yours" so callers cannot probe for existence.
	ErrNotFoundOrUnauthorized = errors.New("project not found or unauthorized")

	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// ForbiddenError reports a role mismatch for the attempted operation.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

func forbidden(msg string) error { return &ForbiddenError{Msg: msg} }
