package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidIndex is returned when a contact index is below 1.
	ErrInvalidIndex = errors.New("contact index must be at least 1")
)
