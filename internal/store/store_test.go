package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/gypgen/internal/errors"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SetGet(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.Set("python", "/usr/bin/python3"))
	value, err := s.Get("python")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3", value)

	require.NoError(t, s.Set("python", "python3.12"))
	value, err = s.Get("python")
	require.NoError(t, err)
	assert.Equal(t, "python3.12", value)
}

func TestStore_EmptyValue(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.Set("flag", ""))
	value, err := s.Get("flag")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestStore_GetMissing(t *testing.T) {
	s := openInMemory(t)

	_, err := s.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.KeyNotFoundErrorCode))

	_, err = s.Get("")
	assert.True(t, errors.HasCode(err, errors.KeyNotFoundErrorCode))
}

func TestStore_SetEmptyKey(t *testing.T) {
	s := openInMemory(t)

	err := s.Set("", "value")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestStore_DeleteAndKeys(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("c", "3"))

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	require.NoError(t, s.Delete("b"))
	require.NoError(t, s.Delete("never-set"))

	keys, err = s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, keys)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	s, err := Open(Config{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.Set("msvs_version", "2022"))
	require.NoError(t, s.Close())

	reopened, err := Open(Config{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get("msvs_version")
	require.NoError(t, err)
	assert.Equal(t, "2022", value)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.StoreErrorCode))
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		arg     string
		key     string
		value   string
		wantErr bool
	}{
		{arg: "python=/usr/bin/python3", key: "python", value: "/usr/bin/python3"},
		{arg: "flags=-O2=fast", key: "flags", value: "-O2=fast"},
		{arg: "empty=", key: "empty", value: ""},
		{arg: " spaced =x", key: "spaced", value: "x"},
		{arg: "novalue", wantErr: true},
		{arg: "=value", wantErr: true},
		{arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			key, value, err := ParseAssignment(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}
