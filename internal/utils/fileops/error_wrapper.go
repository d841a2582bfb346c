package fileops

import (
	"github.com/toyz/gypgen/internal/errors"
)

// ErrorWrapper provides consistent error wrapping for file operations
type ErrorWrapper struct{}

// NewErrorWrapper creates a new ErrorWrapper instance
func NewErrorWrapper() *ErrorWrapper {
	return &ErrorWrapper{}
}

// WrapFileReadError wraps file reading errors with context
func (ew *ErrorWrapper) WrapFileReadError(filePath string, err error) error {
	return errors.WrapFileSystemError("read", filePath, err)
}

// WrapFileWriteError wraps file writing errors with context
func (ew *ErrorWrapper) WrapFileWriteError(filePath string, err error) error {
	return errors.WrapFileSystemError("write", filePath, err)
}

// WrapPathResolutionError wraps path resolution errors with context
func (ew *ErrorWrapper) WrapPathResolutionError(path string, err error) error {
	return errors.WrapFileSystemError("resolve path", path, err)
}

// WrapDirectoryCheckError wraps project root checks with context
func (ew *ErrorWrapper) WrapDirectoryCheckError(dirPath string, err error) error {
	return errors.WrapFileSystemError("open project directory", dirPath, err).
		WithSuggestion("Pass an existing project directory with --dir")
}
