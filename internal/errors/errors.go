package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeSchema marks a fatal structural problem: required or key
	// columns missing from a table.
	ErrTypeSchema ErrorType = "SCHEMA"
	// ErrTypeParsing marks a cell-level cleaning failure. Parsing errors are
	// non-fatal; the affected field degrades to a missing value.
	ErrTypeParsing ErrorType = "PARSING"
	// ErrTypeValidation marks a configuration value outside its documented
	// range, rejected before any row processing.
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSchemaError creates a schema error listing the missing column names.
// The message is surfaced verbatim to the caller.
func NewSchemaError(missing []string) *AppError {
	err := NewAppError(ErrTypeSchema,
		fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	return err.WithContext("missing_columns", missing)
}

// NewKeyColumnError creates a schema error for a key column absent from one
// or both tables under comparison.
func NewKeyColumnError(column string) *AppError {
	err := NewAppError(ErrTypeSchema,
		fmt.Sprintf("key column %q not found in one or both tables", column), nil)
	return err.WithContext("key_column", column)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsSchemaError reports whether err is a schema error.
func IsSchemaError(err error) bool {
	return IsType(err, ErrTypeSchema)
}

// IsValidationError reports whether err is a validation error.
func IsValidationError(err error) bool {
	return IsType(err, ErrTypeValidation)
}
