package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/gypgen/internal/store"
)

type flakyStore struct {
	keys    []string
	failOn  string
	deleted []string
	listErr error
}

func (s *flakyStore) Keys() ([]string, error) {
	return s.keys, s.listErr
}

func (s *flakyStore) Delete(key string) error {
	if key == s.failOn {
		return stderrors.New("disk full")
	}
	s.deleted = append(s.deleted, key)
	return nil
}

func TestCleaner_ClearCache(t *testing.T) {
	s, err := store.Open(store.Config{InMemory: true})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("a", "1"))

	removed, err := NewCleaner(s).ClearCache()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, removed)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCleaner_PartialFailure(t *testing.T) {
	fake := &flakyStore{keys: []string{"a", "b", "c"}, failOn: "b"}

	removed, err := NewCleaner(fake).ClearCache()
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, removed)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCleaner_ListFailure(t *testing.T) {
	fake := &flakyStore{listErr: stderrors.New("closed")}

	removed, err := NewCleaner(fake).ClearCache()
	require.Error(t, err)
	assert.Nil(t, removed)
	assert.Empty(t, fake.deleted)
}
