package service

import "fmt"

// ValidationError represents a malformed or incomplete request payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError indicates that neither identifier resolution path matched a
// stored clip.
type NotFoundError struct {
	ClipID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("clip not found: %s", e.ClipID)
}

// StoreError represents a failure of the underlying document store.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
