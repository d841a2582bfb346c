package errors

import (
	stderrors "errors"
	"fmt"
)

// GypError defines the base interface for all gypgen errors
type GypError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Precondition errors: the requested operation is refused before it starts
	ManifestExistsErrorCode
	ManifestMissingErrorCode

	// I/O and data errors
	FileSystemErrorCode
	ConfigurationErrorCode

	// Key/value cache errors
	StoreErrorCode
	KeyNotFoundErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case ManifestExistsErrorCode:
		return "ManifestExistsError"
	case ManifestMissingErrorCode:
		return "ManifestMissingError"
	case FileSystemErrorCode:
		return "FileSystemError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case StoreErrorCode:
		return "StoreError"
	case KeyNotFoundErrorCode:
		return "KeyNotFoundError"
	default:
		return "UnknownError"
	}
}

// IsPrecondition reports whether the code refuses an operation before it runs
func (e ErrorCode) IsPrecondition() bool {
	return e == ManifestExistsErrorCode || e == ManifestMissingErrorCode
}

// SourceLocation represents the file an error relates to
type SourceLocation struct {
	File string // file path where error occurred
}

// String returns a formatted string representation of the location
func (s SourceLocation) String() string {
	if s.File == "" {
		return "unknown location"
	}
	return s.File
}

// IsEmpty returns true if the location has no useful information
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError provides a common implementation of the GypError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Loc         SourceLocation         // file the error relates to
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	msg := e.Message
	if !e.Loc.IsEmpty() {
		msg = fmt.Sprintf("%s: %s", e.Loc.String(), msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Location returns the file the error relates to
func (e *BaseError) Location() SourceLocation {
	return e.Loc
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithLocation adds location information to the error
func (e *BaseError) WithLocation(file string) *BaseError {
	e.Loc = SourceLocation{File: file}
	return e
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// WithSuggestions adds multiple helpful suggestions
func (e *BaseError) WithSuggestions(suggestions ...string) *BaseError {
	e.Hints = append(e.Hints, suggestions...)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// Wrapf creates a new error that wraps another error with formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// CodeOf returns the code of the first GypError in err's chain
func CodeOf(err error) ErrorCode {
	var gypErr GypError
	if stderrors.As(err, &gypErr) {
		return gypErr.ErrorCode()
	}
	return UnknownErrorCode
}

// HasCode reports whether err's chain carries a GypError with the given code
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsPrecondition reports whether err refused an operation before it ran
func IsPrecondition(err error) bool {
	return err != nil && CodeOf(err).IsPrecondition()
}
