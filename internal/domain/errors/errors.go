package errors

import (
	"fmt"
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Identity-related errors
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"You must be signed in to do this",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to do this",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials or role mismatch",
		"",
	)

	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"Email already registered",
		"",
	)

	ErrLastAdminProtected = NewBaseError(
		http.StatusConflict,
		"LAST_ADMIN_PROTECTED",
		"Cannot delete the only admin user",
		"",
	)

	// Cart and checkout errors
	ErrEmptyCart = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CART",
		"Your cart is empty",
		"",
	)

	ErrZoneMismatch = NewBaseError(
		http.StatusBadRequest,
		"ZONE_MISMATCH",
		"Selected delivery zone does not match the delivery address",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)
)

// ErrOutOfStock is the sentinel for stock shortfalls; use NewOutOfStockError
// to attach the offending product. errors.Is against this value matches any
// instance produced by the constructor.
var ErrOutOfStock = NewBaseError(
	http.StatusConflict,
	"OUT_OF_STOCK",
	"Requested quantity exceeds available stock",
	"",
)

// OutOfStockError names the product whose live stock could not cover the
// requested quantity.
type OutOfStockError struct {
	ProductName string
	Available   int
}

// NewOutOfStockError creates an OutOfStockError for the given product.
func NewOutOfStockError(productName string, available int) *OutOfStockError {
	return &OutOfStockError{ProductName: productName, Available: available}
}

// Error implements the error interface
func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("only %d items available in stock for %s", e.Available, e.ProductName)
}

// Is makes errors.Is(err, ErrOutOfStock) succeed for any OutOfStockError.
func (e *OutOfStockError) Is(target error) bool {
	return target == ErrOutOfStock
}

// HTTPCode returns the HTTP status code
func (e *OutOfStockError) HTTPCode() int {
	return http.StatusConflict
}

// ErrorCode returns the business error code
func (e *OutOfStockError) ErrorCode() string {
	return "OUT_OF_STOCK"
}

// Message returns the user-friendly error message
func (e *OutOfStockError) Message() string {
	return e.Error()
}

// Details returns detailed error information
func (e *OutOfStockError) Details() string {
	return ""
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
