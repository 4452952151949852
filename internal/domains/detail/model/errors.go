package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeDetailNotFound      = "DET001"
	ErrCodeConstraintViolation = "DET002"
	ErrCodeValidation          = "DET003"
	ErrCodeTransient           = "DET004"
)

// Errors
var (
	ErrDetailNotFound      = errors.New("car detail not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrModelMakeMismatch   = errors.New("car model does not belong to the given make")
)

// DetailError custom error type
type DetailError struct {
	Code    string
	Message string
	Err     error
}

func (e *DetailError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DetailError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewDetailNotFoundError() *DetailError {
	return &DetailError{
		Code:    ErrCodeDetailNotFound,
		Message: "Car detail not found",
		Err:     ErrDetailNotFound,
	}
}

func NewConstraintViolationError(detail string) *DetailError {
	return &DetailError{
		Code:    ErrCodeConstraintViolation,
		Message: fmt.Sprintf("Constraint violation: %s", detail),
		Err:     ErrConstraintViolation,
	}
}

func NewModelMakeMismatchError() *DetailError {
	return &DetailError{
		Code:    ErrCodeConstraintViolation,
		Message: "Car model does not belong to the given make",
		Err:     ErrModelMakeMismatch,
	}
}

func NewValidationError(err error) *DetailError {
	return &DetailError{
		Code:    ErrCodeValidation,
		Message: "Invalid input",
		Err:     err,
	}
}

func NewTransientError(err error) *DetailError {
	return &DetailError{
		Code:    ErrCodeTransient,
		Message: "Storage operation failed",
		Err:     err,
	}
}
