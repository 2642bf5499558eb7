package user

import "errors"

var (
	// -- Resource State --
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
	ErrInactive     = errors.New("account is deactivated")

	// -- Validation & Input --
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingEmail       = errors.New("email is required")
	ErrMissingPassword    = errors.New("password is required")
)
