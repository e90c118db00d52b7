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
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Backup tree errors
	ErrBackupRoot  ErrorCode = "BACKUP_ROOT"
	ErrEmptyBackup ErrorCode = "BACKUP_EMPTY"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCopy     ErrorCode = "FILE_COPY"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// Subprocess errors
	ErrCommandRun   ErrorCode = "COMMAND_RUN"
	ErrConditionRun ErrorCode = "CONDITION_RUN"
)

// SnapError represents a structured error with code and details
type SnapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SnapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SnapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SnapError) Is(target error) bool {
	var targetErr *SnapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SnapError with the given code and message
func New(code ErrorCode, message string) *SnapError {
	return &SnapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SnapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SnapError {
	return &SnapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SnapError
func Wrap(err error, code ErrorCode, message string) *SnapError {
	if err == nil {
		return nil
	}
	return &SnapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SnapError {
	if err == nil {
		return nil
	}
	return &SnapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SnapError) WithDetail(key string, value interface{}) *SnapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var snapErr *SnapError
	if errors.As(err, &snapErr) {
		return snapErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SnapError
func GetErrorCode(err error) ErrorCode {
	var snapErr *SnapError
	if errors.As(err, &snapErr) {
		return snapErr.Code
	}
	return ErrUnknown
}
