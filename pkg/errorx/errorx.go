package errorx

import (
	"errors"
	"fmt"
)

// CodeError carries a business error code alongside a user-facing message.
// It wraps an optional cause so errors.Is / errors.As keep working through it.
type CodeError struct {
	Code  int    // business error code
	Msg   string // message safe to show to the user
	cause error  // wrapped underlying error
}

// Error implements the error interface.
// With a cause the format is "msg: cause", otherwise just msg.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err with a business code and message.
// Usage: errorx.Wrap(err, CodeNotFound, "application not found")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf wraps err with a business code and a formatted message.
// Usage: errorx.Wrapf(err, CodeNotFound, "application id=%d", id)
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from err, CodeServerBusy if err is not a CodeError.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business codes
const (
	CodeSuccess        = 1000 // success
	CodeInvalidParam   = 1001 // bad request parameters
	CodeServerBusy     = 1005 // generic internal failure
	CodeUnauthorized   = 1006 // not logged in / bad credentials
	CodeNotFound       = 1008 // record not found
	CodeDBError        = 1010 // database failure
	CodeCacheError     = 1011 // redis failure
	CodeInvalidFile    = 1012 // uploaded file rejected
	CodeFileMissing    = 1013 // stored file missing
	CodeStorageError   = 1014 // upload store failure
	CodeEntityTooLarge = 1015 // request body over the configured cap
)

// Predefined errors, usable directly or with errors.Is.
var (
	ErrInvalidParam       = New(CodeInvalidParam, "Invalid request parameters")
	ErrServerBusy         = New(CodeServerBusy, "An unexpected error occurred. Please try again.")
	ErrInvalidCredentials = New(CodeUnauthorized, "Invalid username or password. Please try again.")
)

// IsNotFound reports whether err is a "not found" error.
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}

// Message returns the user-facing message of a CodeError, or fallback for any other error.
func Message(err error, fallback string) string {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Msg
	}
	return fallback
}
