package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username already registered")

	// Propagation errors
	ErrInvalidTLE            = errors.New("malformed two-line element set")
	ErrPropagationOutOfRange = errors.New("instant outside the propagation model validity range")
	ErrComputeTimeout        = errors.New("propagation did not complete in time")
)
