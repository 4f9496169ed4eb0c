package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestValid ErrorCode = "MANIFEST_INVALID"

	// Reconciliation errors
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrFetchFailed       ErrorCode = "FETCH_FAILED"
	ErrToolFailed        ErrorCode = "TOOL_FAILED"
	ErrExtractEmpty      ErrorCode = "EXTRACT_EMPTY"
	ErrExtract           ErrorCode = "EXTRACT"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// UnboxError represents a structured error with code and details
type UnboxError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *UnboxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *UnboxError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *UnboxError) Is(target error) bool {
	var targetErr *UnboxError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new UnboxError with the given code and message
func New(code ErrorCode, message string) *UnboxError {
	return &UnboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new UnboxError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *UnboxError {
	return &UnboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an UnboxError
func Wrap(err error, code ErrorCode, message string) *UnboxError {
	if err == nil {
		return nil
	}
	return &UnboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *UnboxError {
	if err == nil {
		return nil
	}
	return &UnboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *UnboxError) WithDetail(key string, value interface{}) *UnboxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var unboxErr *UnboxError
	if errors.As(err, &unboxErr) {
		return unboxErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an UnboxError
func GetErrorCode(err error) ErrorCode {
	var unboxErr *UnboxError
	if errors.As(err, &unboxErr) {
		return unboxErr.Code
	}
	return ErrUnknown
}
