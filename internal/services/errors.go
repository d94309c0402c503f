package services

import "errors"

var (
	// ErrValidation means a required input was missing or empty.
	ErrValidation = errors.New("all fields are required")
	// ErrConflict means the email is already registered.
	ErrConflict = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot tell which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
