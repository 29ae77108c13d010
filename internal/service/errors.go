package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNotFound indicates that the requested record does not exist, either
	// upstream for reads or in the local store for writes.
	ErrNotFound = errors.New("record not found")
)

// ServiceError is a custom error type for catalog service errors.
type ServiceError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Entity, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Entity, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(entity, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
