package utils

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/toyz/gypgen/internal/errors"
)

// writeTree creates every file (with parent directories) below root
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, file := range files {
		path := filepath.Join(root, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", file, err)
		}
		if err := os.WriteFile(path, []byte("// "+file), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", file, err)
		}
	}
}

func TestFileFilters(t *testing.T) {
	sourceFilter := NativeSourceFilter()
	for _, name := range []string{"a.c", "b.cc", "c.cpp", "dir.name.cc"} {
		if !sourceFilter(name) {
			t.Errorf("expected %s to be recognized as a native source", name)
		}
	}
	for _, name := range []string{"a.h", "b.hpp", "c.cxx", "main.go", "Makefile", "cc", "x.C"} {
		if sourceFilter(name) {
			t.Errorf("expected %s to be ignored", name)
		}
	}

	excluded := ExcludedDirectoryFilter("build")
	for _, name := range []string{"node_modules", ".git", "build"} {
		if !excluded(name) {
			t.Errorf("expected %s to be excluded", name)
		}
	}
	for _, name := range []string{"src", ".github", "node_modules2", "git"} {
		if excluded(name) {
			t.Errorf("expected %s to be scanned", name)
		}
	}
}

func TestFileProcessor_ScanSources(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"addon.cc",
		"util.c",
		"README.md",
		"src/lib.cpp",
		"src/lib.h",
		"src/deep/nested/impl.cc",
		"node_modules/dep/src/dep.cc",
		"src/node_modules/inner.cc",
		".git/hooks/hook.c",
		"test/fixtures/native.cpp",
	)

	fp := NewFileProcessor()
	sources, err := fp.ScanSources(context.Background(), root)
	if err != nil {
		t.Fatalf("ScanSources failed: %v", err)
	}

	expected := []string{
		"addon.cc",
		"util.c",
		"src/lib.cpp",
		"src/deep/nested/impl.cc",
		"test/fixtures/native.cpp",
	}

	got := append([]string(nil), sources...)
	sort.Strings(got)
	want := append([]string(nil), expected...)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sources %v, got %v", want, got)
	}
}

func TestFileProcessor_ScanSources_Order(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"b/two.cc",
		"a/one.cc",
		"z.cc",
		"a/sub/three.cc",
		"m.c",
	)

	fp := NewFileProcessor()
	sources, err := fp.ScanSources(context.Background(), root)
	if err != nil {
		t.Fatalf("ScanSources failed: %v", err)
	}

	// files of a directory first, then subtrees in listing order
	expected := []string{"m.c", "z.cc", "a/one.cc", "a/sub/three.cc", "b/two.cc"}
	if !reflect.DeepEqual(sources, expected) {
		t.Fatalf("expected %v, got %v", expected, sources)
	}

	again, err := fp.ScanSources(context.Background(), root)
	if err != nil {
		t.Fatalf("second ScanSources failed: %v", err)
	}
	if !reflect.DeepEqual(sources, again) {
		t.Errorf("scan is not deterministic: %v vs %v", sources, again)
	}
}

func TestFileProcessor_OnlyExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"node_modules/a/a.cc",
		".git/objects/b.c",
	)

	sources, err := NewFileProcessor().ScanSources(context.Background(), root)
	if err != nil {
		t.Fatalf("ScanSources failed: %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("expected no sources, got %v", sources)
	}
}

func TestFileProcessor_EmptyDirectory(t *testing.T) {
	sources, err := NewFileProcessor().ScanSources(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("ScanSources failed: %v", err)
	}
	if sources == nil || len(sources) != 0 {
		t.Errorf("expected an empty, non-nil result, got %#v", sources)
	}
}

func TestFileProcessor_ExtraExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"src/main.cc",
		"build/Release/obj/main.cc",
		"vendor/lib.c",
	)

	fp := NewFileProcessorWithExcludes([]string{"build", "vendor"})
	sources, err := fp.ScanSources(context.Background(), root)
	if err != nil {
		t.Fatalf("ScanSources failed: %v", err)
	}
	if !reflect.DeepEqual(sources, []string{"src/main.cc"}) {
		t.Errorf("expected only src/main.cc, got %v", sources)
	}
}

func TestFileProcessor_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := NewFileProcessor().SearchTree(context.Background(), missing)
	if err == nil {
		t.Fatal("expected an error for a missing root")
	}
	if !errors.HasCode(err, errors.FileSystemErrorCode) {
		t.Errorf("expected a FileSystemError, got %v", err)
	}
}

func TestFileProcessor_BrokenSymlinkFailsScan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "ok.cc", "sub/fine.cc")
	if err := os.Symlink(filepath.Join(root, "missing-target"), filepath.Join(root, "sub", "dangling")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := NewFileProcessor().ScanSources(context.Background(), root)
	if err == nil {
		t.Fatal("expected the dangling symlink to fail the scan")
	}
	if !errors.HasCode(err, errors.FileSystemErrorCode) {
		t.Errorf("expected a FileSystemError, got %v", err)
	}
}

func TestFileProcessor_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.cc")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFileProcessor().SearchTree(ctx, root); err == nil {
		t.Fatal("expected a cancelled context to stop the scan")
	}
}
