// Package store provides the local key/value cache behind --set and --get.
//
// The cache is an embedded BadgerDB directory, by default $TMPDIR/gyp-cli.
// A Store is an explicit handle: Open loads it, Set persists immediately,
// Close flushes and releases the directory lock.
package store

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/toyz/gypgen/internal/errors"
	"github.com/toyz/gypgen/internal/utils"
)

// DefaultDirName is the cache directory created under the system temp dir
const DefaultDirName = "gyp-cli"

// DefaultPath returns the default cache directory
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultDirName)
}

// Config holds configuration for a Store
type Config struct {
	// Path is the directory for the database files. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in memory; used by tests.
	InMemory bool

	// Diagnostics receives badger's internal log output. Nil disables it.
	Diagnostics *utils.DiagnosticSystem
}

// Store is a persistent string key/value cache
type Store struct {
	db *badger.DB
}

// diagnosticsLogger adapts the diagnostic system to badger's Logger interface
type diagnosticsLogger struct {
	diagnostics *utils.DiagnosticSystem
}

func (l *diagnosticsLogger) Errorf(format string, args ...interface{}) {
	l.diagnostics.Error("cache: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *diagnosticsLogger) Warningf(format string, args ...interface{}) {
	l.diagnostics.Warn("cache: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *diagnosticsLogger) Infof(format string, args ...interface{}) {
	l.diagnostics.Debug("cache: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *diagnosticsLogger) Debugf(format string, args ...interface{}) {
	l.diagnostics.Debug("cache: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Open opens the cache described by cfg, creating the directory if needed
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New(errors.StoreErrorCode, "cache path is required for a persistent cache")
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, errors.WrapFileSystemError("create cache directory", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Diagnostics != nil {
		opts = opts.WithLogger(&diagnosticsLogger{diagnostics: cfg.Diagnostics})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(errors.StoreErrorCode, "failed to open cache", err).
			WithLocation(cfg.Path).
			WithSuggestion("Make sure no other gypgen process is using the cache directory")
	}
	return &Store{db: db}, nil
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(key, value string) error {
	if key == "" {
		return errors.New(errors.ConfigurationErrorCode, "cache key cannot be empty")
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return errors.WrapStoreError("set", key, err)
	}
	return nil
}

// Get returns the value stored under key
func (s *Store) Get(key string) (string, error) {
	if key == "" {
		return "", errors.NewKeyNotFoundError(key)
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return "", errors.NewKeyNotFoundError(key)
	}
	if err != nil {
		return "", errors.WrapStoreError("get", key, err)
	}
	return string(value), nil
}

// Delete removes key; deleting a missing key is not an error
func (s *Store) Delete(key string) error {
	if key == "" {
		return nil
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return errors.WrapStoreError("delete", key, err)
	}
	return nil
}

// Keys returns every stored key in ascending order
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapStoreError("list", "*", err)
	}
	return keys, nil
}

// Close flushes pending writes and releases the cache directory
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.StoreErrorCode, "failed to close cache", err)
	}
	return nil
}

// ParseAssignment splits a "key=value" argument on its first '='
func ParseAssignment(arg string) (key, value string, err error) {
	key, value, found := strings.Cut(arg, "=")
	if !found {
		return "", "", errors.Newf(errors.ConfigurationErrorCode, "invalid assignment %q", arg).
			WithSuggestion("Use --set key=value")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", errors.Newf(errors.ConfigurationErrorCode, "invalid assignment %q: empty key", arg).
			WithSuggestion("Use --set key=value")
	}
	return key, value, nil
}
