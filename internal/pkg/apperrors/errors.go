package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Member errors
var (
	ErrMemberNotFound     = fmt.Errorf("member not found: %w", ErrResourceNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", ErrResourceAlreadyExists)
	ErrInvalidRole        = fmt.Errorf("invalid role: %w", ErrValidationFailed)
)

// Event errors
var (
	ErrEventNotFound       = fmt.Errorf("event not found: %w", ErrResourceNotFound)
	ErrInvalidEventType    = fmt.Errorf("invalid event type: %w", ErrValidationFailed)
	ErrParticipantNotFound = fmt.Errorf("participant not found: %w", ErrResourceNotFound)
	ErrInvalidEventDate    = fmt.Errorf("invalid event date or time: %w", ErrValidationFailed)
)

// Attendance errors
var (
	ErrAttendanceNotFound = fmt.Errorf("attendance not found: %w", ErrResourceNotFound)
	ErrAttendanceExists   = fmt.Errorf("attendance already recorded: %w", ErrConflict)
)

// Department errors
var (
	ErrDepartmentNotFound      = fmt.Errorf("department not found: %w", ErrResourceNotFound)
	ErrDepartmentAlreadyExists = fmt.Errorf("department with this name already exists: %w", ErrResourceAlreadyExists)
	ErrDepartmentHasRelations  = fmt.Errorf("department has teams or members and cannot be deleted: %w", ErrConflict)
	ErrTeamNotFound            = fmt.Errorf("team not found: %w", ErrResourceNotFound)
	ErrTeamAlreadyExists       = fmt.Errorf("team with this name already exists: %w", ErrResourceAlreadyExists)
)

// First-timer call errors
var (
	ErrInvalidCallStatus = fmt.Errorf("invalid call status: %w", ErrValidationFailed)
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
