package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflicting state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInvalidState indicates an operation attempted on a budget or payment whose
// status does not admit it (e.g. editing a terminal budget).
var ErrInvalidState = errors.New("invalid state for operation")

// ErrLocked indicates a mutation attempted on a work entry referenced by a paid payment.
var ErrLocked = errors.New("work entry is locked by a paid payment")

// ErrApprovedExists indicates a second budget for the same job would become approved.
var ErrApprovedExists = errors.New("job already has an approved budget")

// ErrAlreadyPaid indicates a pay action on a payment that is already paid.
var ErrAlreadyPaid = errors.New("payment is already paid")

// ErrNotPaid indicates a reversal attempted on a payment that is not paid.
var ErrNotPaid = errors.New("payment is not paid")

// AppError carries a status code alongside the wrapped cause. Repositories use
// it for infrastructure failures that are not business-rule violations.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
