package fileops

import (
	"os"
)

// FileOps provides a unified interface for the file operations gypgen performs
// on project files, combining path validation and error handling
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
	write         func(f *os.File, content []byte) error
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
		write:         writeAll,
	}
}

func writeAll(f *os.File, content []byte) error {
	_, err := f.Write(content)
	return err
}

// PathValidator returns the path validator instance
func (fo *FileOps) PathValidator() *PathValidator {
	return fo.pathValidator
}

// ErrorWrapper returns the error wrapper instance
func (fo *FileOps) ErrorWrapper() *ErrorWrapper {
	return fo.errorWrapper
}

// ReadFile reads an existing file
func (fo *FileOps) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return nil, fo.errorWrapper.WrapFileReadError(filePath, err)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}
	return content, nil
}

// WriteFile writes content to a file, replacing any previous content
func (fo *FileOps) WriteFile(filePath string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(filePath, err)
	}

	if err := os.WriteFile(cleanPath, content, perm); err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	return nil
}

// CreateFile writes content to a new file and fails if the file already exists.
// A file that cannot be fully written is removed again.
func (fo *FileOps) CreateFile(filePath string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(filePath, err)
	}

	f, err := os.OpenFile(cleanPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	if err := fo.write(f, content); err != nil {
		f.Close()
		os.Remove(cleanPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(cleanPath)
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	return nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}

// IsFile checks if a path is a regular file using the path validator
func (fo *FileOps) IsFile(path string) bool {
	return fo.pathValidator.IsFile(path)
}
