package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation            = 4000
	CodeInsufficientBalance   = 4001
	CodeInvalidAmount         = 4002
	CodeInvalidUserID         = 4003
	CodeBonusAlreadyClaimed   = 4004
	CodeConstraintViolation   = 4005
	CodeInvalidPaymentID      = 4006
	CodeUnauthenticated       = 4010
	CodeInvalidCredentials    = 4011
	CodeForbidden             = 4030
	CodeUserNotFound          = 4040
	CodePaymentNotFound       = 4041
	CodePaymentAlreadySettled = 4090
	CodeTooManyRequests       = 4290

	// 5xxx - Server errors
	CodeInternalServer   = 5000
	CodeStoreUnavailable = 5030
)

// Base error types
var (
	// ErrValidation is returned when request input is malformed or incomplete
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientBalance is returned when a user has insufficient funds for an order
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when a money amount has an invalid format
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a money amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidPaymentID is returned when the payment ID is not a positive integer
	ErrInvalidPaymentID = errors.New("payment ID must be positive")

	// ErrInvalidStatus is returned when a stored or requested status is not recognized
	ErrInvalidStatus = errors.New("invalid status")

	// ErrUnauthenticated is returned when an operation requires a session and none is present
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials is returned when password verification is enabled and fails
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when an admin operation is called without admin rights
	ErrForbidden = errors.New("forbidden")

	// ErrTooManyRequests is returned when a client exceeds its request budget
	ErrTooManyRequests = errors.New("too many requests")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrPaymentNotFound is returned when the requested payment doesn't exist
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrSessionNotFound is returned when a session id does not resolve to a live session
	ErrSessionNotFound = errors.New("session not found")

	// ErrBonusAlreadyClaimed is returned on a second bonus claim
	ErrBonusAlreadyClaimed = errors.New("bonus already claimed")

	// ErrPaymentAlreadySettled is returned when a payment is no longer pending
	ErrPaymentAlreadySettled = errors.New("payment already processed")

	// ErrConstraintViolation is returned when a uniqueness or reference constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrStoreUnavailable is returned for transient persistence failures
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidPaymentID):
		return CodeInvalidPaymentID
	case errors.Is(err, ErrBonusAlreadyClaimed):
		return CodeBonusAlreadyClaimed
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrSessionNotFound):
		return CodeUnauthenticated
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrPaymentNotFound):
		return CodePaymentNotFound
	case errors.Is(err, ErrPaymentAlreadySettled):
		return CodePaymentAlreadySettled
	case errors.Is(err, ErrTooManyRequests):
		return CodeTooManyRequests
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	default:
		return CodeInternalServer
	}
}

// ValidationError describes which input field failed validation
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Is reports ValidationError as ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new field validation error
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// ConstraintError names the entity and field behind a constraint violation
type ConstraintError struct {
	Entity string
	Field  string
	Err    error
}

// Error implements the error interface
func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: constraint violated: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("%s.%s: constraint violated: %v", e.Entity, e.Field, e.Err)
}

// Unwrap returns the underlying driver error
func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrConstraintViolation
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// LogFields returns a map of fields for structured logging
func (e *ConstraintError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "constraint_violation",
		"entity":     e.Entity,
		"field":      e.Field,
		"error_code": CodeConstraintViolation,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewConstraintError creates a constraint violation for the given entity field
func NewConstraintError(entity, field string, err error) error {
	return &ConstraintError{Entity: entity, Field: field, Err: err}
}

// IsConstraintViolationOn reports whether err is a constraint violation on the given field
func IsConstraintViolationOn(err error, field string) bool {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Field == field
	}
	return false
}

// IsValidationError checks if the error is an input validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsConstraintViolationError checks if the error is a store constraint violation
func IsConstraintViolationError(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

// IsStoreUnavailableError checks if the error is a transient store failure
func IsStoreUnavailableError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
