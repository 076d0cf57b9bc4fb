package models

import (
	"errors"
	"fmt"
)

var ErrValidationFailed = errors.New("validation failed")

// ValidationError names the field that failed validation and unwraps to ErrValidationFailed
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
