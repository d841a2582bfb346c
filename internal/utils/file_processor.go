package utils

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/gypgen/internal/errors"
	"github.com/toyz/gypgen/internal/models"
)

// FileFilter decides whether a file name is recorded by the scan
type FileFilter func(name string) bool

// DirectoryFilter decides whether an entry name is skipped entirely
type DirectoryFilter func(name string) bool

// NativeSourceFilter matches the recognized native source extensions
func NativeSourceFilter() FileFilter {
	extensions := make(map[string]bool, len(models.NativeSourceExtensions))
	for _, ext := range models.NativeSourceExtensions {
		extensions[ext] = true
	}

	return func(name string) bool {
		return extensions[filepath.Ext(name)]
	}
}

// ExcludedDirectoryFilter matches node_modules, .git and any extra names.
// Matching is on the exact base name.
func ExcludedDirectoryFilter(extra ...string) DirectoryFilter {
	excluded := make(map[string]bool, len(models.ExcludedDirectories)+len(extra))
	for _, name := range models.ExcludedDirectories {
		excluded[name] = true
	}
	for _, name := range extra {
		excluded[name] = true
	}

	return func(name string) bool {
		return excluded[name]
	}
}

// FileProcessor walks project trees looking for native sources
type FileProcessor struct {
	fileFilter FileFilter
	excluded   DirectoryFilter
}

// NewFileProcessor creates a file processor with the default filters
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileFilter: NativeSourceFilter(),
		excluded:   ExcludedDirectoryFilter(),
	}
}

// NewFileProcessorWithExcludes creates a file processor that also skips extra names
func NewFileProcessorWithExcludes(extra []string) *FileProcessor {
	return &FileProcessor{
		fileFilter: NativeSourceFilter(),
		excluded:   ExcludedDirectoryFilter(extra...),
	}
}

// SearchTree returns the joined paths of every native source below dir.
//
// Entries of one directory are stat'ed concurrently and subdirectories are
// descended concurrently. Results are concatenated in listing order: the
// files of dir first, then each subtree in turn. Any unreadable entry fails
// the whole walk.
func (fp *FileProcessor) SearchTree(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("read directory", dir, err)
	}

	infos := make([]os.FileInfo, len(entries))
	var stats errgroup.Group
	for i, entry := range entries {
		stats.Go(func() error {
			path := filepath.Join(dir, entry.Name())
			info, err := os.Stat(path)
			if err != nil {
				return errors.WrapFileSystemError("stat", path, err)
			}
			infos[i] = info
			return nil
		})
	}
	if err := stats.Wait(); err != nil {
		return nil, err
	}

	var found []string
	var subdirs []string
	for i, entry := range entries {
		name := entry.Name()
		switch {
		case fp.excluded(name):
			continue
		case fp.fileFilter(name):
			found = append(found, filepath.Join(dir, name))
		case infos[i].IsDir():
			subdirs = append(subdirs, filepath.Join(dir, name))
		}
	}

	subtrees := make([][]string, len(subdirs))
	g, gctx := errgroup.WithContext(ctx)
	for i, subdir := range subdirs {
		g.Go(func() error {
			files, err := fp.SearchTree(gctx, subdir)
			if err != nil {
				return err
			}
			subtrees[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, files := range subtrees {
		found = append(found, files...)
	}
	return found, nil
}

// ScanSources runs SearchTree on root and returns slash-separated paths
// relative to root
func (fp *FileProcessor) ScanSources(ctx context.Context, root string) ([]string, error) {
	files, err := fp.SearchTree(ctx, root)
	if err != nil {
		return nil, err
	}

	sources := make([]string, 0, len(files))
	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve path", file, err)
		}
		sources = append(sources, filepath.ToSlash(rel))
	}
	return sources, nil
}
