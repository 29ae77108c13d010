package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a write request fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyID is returned when an entity would be stored without an ID.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrMalformedRecord is returned when an upstream record is not a JSON object.
	ErrMalformedRecord = errors.New("malformed upstream record")
)
