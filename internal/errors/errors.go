package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode checks whether the error carries the given code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes
const (
	CodeArtifactUnreadable = "ARTIFACT_UNREADABLE"
	CodeArtifactMalformed  = "ARTIFACT_MALFORMED"
	CodeExternalRunFailure = "EXTERNAL_RUN_FAILURE"
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Common error constructors

// ArtifactUnreadable marks a checkpoint that could not be opened or decoded.
func ArtifactUnreadable(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeArtifactUnreadable,
		Message: fmt.Sprintf("checkpoint %s unreadable", path),
		Cause:   cause,
	}
}

// ArtifactMalformed marks a checkpoint that decoded but is missing a
// required field.
func ArtifactMalformed(path, field string) *AppError {
	return New(CodeArtifactMalformed, fmt.Sprintf("checkpoint %s missing %s", path, field))
}

// ExternalRunFailure marks a training subprocess that exited non-zero.
func ExternalRunFailure(tag string, exitCode int, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalRunFailure,
		Message: fmt.Sprintf("training run %s failed with exit code %d", tag, exitCode),
		Cause:   cause,
	}
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
