package utils

import (
	"encoding/json"

	"github.com/toyz/gypgen/internal/models"
	"github.com/toyz/gypgen/internal/utils/fileops"
)

// ProjectReader reads the conventional files of a native addon project
type ProjectReader struct {
	root    string
	fileOps *fileops.FileOps
}

// NewProjectReader creates a reader for the project rooted at root
func NewProjectReader(root string) *ProjectReader {
	return &ProjectReader{
		root:    root,
		fileOps: fileops.NewFileOps(),
	}
}

// Root returns the project root directory
func (r *ProjectReader) Root() string {
	return r.root
}

// Path resolves a project-relative file name
func (r *ProjectReader) Path(name string) (string, error) {
	path, err := r.fileOps.PathValidator().ResolveWithin(r.root, name)
	if err != nil {
		return "", r.fileOps.ErrorWrapper().WrapPathResolutionError(name, err)
	}
	return path, nil
}

// ReadMetadata reads name and dependencies from the package manifest.
// A missing, unreadable or malformed file yields the zero metadata and
// false; the cases are deliberately indistinguishable.
func (r *ProjectReader) ReadMetadata(fileName string) (models.ProjectMetadata, bool) {
	path, err := r.Path(fileName)
	if err != nil {
		return models.ProjectMetadata{}, false
	}

	content, err := r.fileOps.ReadFile(path)
	if err != nil {
		return models.ProjectMetadata{}, false
	}

	var meta models.ProjectMetadata
	if err := json.Unmarshal(content, &meta); err != nil {
		return models.ProjectMetadata{}, false
	}
	return meta, true
}

// HasEntry reports whether a project-relative path exists
func (r *ProjectReader) HasEntry(name string) bool {
	path, err := r.Path(name)
	if err != nil {
		return false
	}
	return r.fileOps.Exists(path)
}
