package cli

import (
	"github.com/toyz/gypgen/internal/errors"
)

// KeyValueStore is the subset of the cache a Cleaner needs
type KeyValueStore interface {
	Keys() ([]string, error)
	Delete(key string) error
}

// Cleaner removes every entry from the local cache
type Cleaner struct {
	store KeyValueStore
}

// NewCleaner creates a new cleaner for s
func NewCleaner(s KeyValueStore) *Cleaner {
	return &Cleaner{store: s}
}

// ClearCache deletes all keys and returns the ones removed. Keys removed
// before a failure are still reported.
func (c *Cleaner) ClearCache() ([]string, error) {
	keys, err := c.store.Keys()
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := c.store.Delete(key); err != nil {
			return removed, errors.WrapWithOperation("clear", "local cache", err).
				WithContext("removed", len(removed))
		}
		removed = append(removed, key)
	}
	return removed, nil
}
