package cli

import (
	"context"
	"os"

	"github.com/toyz/gypgen/internal/errors"
	"github.com/toyz/gypgen/internal/utils"
	"github.com/toyz/gypgen/internal/utils/fileops"
)

// DirectoryScanner resolves the project root and collects its native sources
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
	pathValidator *fileops.PathValidator
	errorWrapper  *fileops.ErrorWrapper
}

// NewDirectoryScanner creates a scanner that also skips the given directory names
func NewDirectoryScanner(extraExcludes []string) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessorWithExcludes(extraExcludes),
		pathValidator: fileops.NewPathValidator(),
		errorWrapper:  fileops.NewErrorWrapper(),
	}
}

// ResolveRoot returns the absolute project root, which must be a directory
func (s *DirectoryScanner) ResolveRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	absPath, err := s.pathValidator.GetAbsolutePath(dir)
	if err != nil {
		return "", errors.WrapWithOperation("process", "path resolution "+dir, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return "", s.errorWrapper.WrapDirectoryCheckError(absPath, err)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.FileSystemErrorCode, "project root '%s' is not a directory", absPath).
			WithLocation(absPath).
			WithSuggestion("Pass an existing directory with --dir")
	}
	return absPath, nil
}

// ScanSources implements generator.SourceScanner
func (s *DirectoryScanner) ScanSources(ctx context.Context, root string) ([]string, error) {
	absRoot, err := s.ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	return s.fileProcessor.ScanSources(ctx, absRoot)
}
