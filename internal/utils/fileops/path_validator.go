package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator provides centralized path validation and cleaning functionality
type PathValidator struct{}

// NewPathValidator creates a new PathValidator instance
func NewPathValidator() *PathValidator {
	return &PathValidator{}
}

// ValidateAndClean validates and cleans a file path, ensuring it exists
func (pv *PathValidator) ValidateAndClean(filePath string) (string, error) {
	cleanPath, err := pv.ValidateAndCleanOptional(filePath)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(cleanPath); err != nil {
		return "", err
	}

	return cleanPath, nil
}

// ValidateAndCleanOptional validates and cleans a path but doesn't require it to exist
func (pv *PathValidator) ValidateAndCleanOptional(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	return filepath.Clean(filePath), nil
}

// ResolveWithin joins a project-relative name onto root and rejects names
// that would leave root
func (pv *PathValidator) ResolveWithin(root, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("file name cannot be empty")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("file name must be relative to the project root: %s", name)
	}

	cleanName := filepath.Clean(name)
	if cleanName == ".." || strings.HasPrefix(cleanName, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed in file name: %s", name)
	}

	return filepath.Join(root, cleanName), nil
}

// Exists checks if a path exists
func (pv *PathValidator) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir checks if a path exists and is a directory
func (pv *PathValidator) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if a path exists and is a regular file
func (pv *PathValidator) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// GetAbsolutePath resolves a path to its absolute form
func (pv *PathValidator) GetAbsolutePath(path string) (string, error) {
	cleanPath, err := pv.ValidateAndCleanOptional(path)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s: %w", cleanPath, err)
	}

	return absPath, nil
}
