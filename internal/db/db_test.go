package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := NewSQLite(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	bolt, err := NewBolt(filepath.Join(dir, "test.bolt"))
	require.NoError(t, err)

	backends := map[string]KV{
		"sqlite": sqlite,
		"bolt":   bolt,
		"memory": NewMemory(),
	}
	t.Cleanup(func() {
		for _, kv := range backends {
			kv.Close()
		}
	})
	return backends
}

func TestKV_GetSetDelete(t *testing.T) {
	for name, kv := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("k", `[{"id":"1"}]`))
			v, ok, err := kv.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"1"}]`, v)

			require.NoError(t, kv.Set("k", "[]"))
			v, _, _ = kv.Get("k")
			assert.Equal(t, "[]", v)

			require.NoError(t, kv.Delete("k"))
			_, ok, err = kv.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestKV_EmptyValueIsPresent(t *testing.T) {
	for name, kv := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set("empty", ""))
			_, ok, err := kv.Get("empty")
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	first, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("authToken", "abc"))
	require.NoError(t, first.Close())

	second, err := NewSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.Get("authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, kind := range []string{KindSQLite, KindBolt, KindMemory} {
		kv, err := Open(kind, dir)
		require.NoError(t, err, kind)
		require.NoError(t, kv.Close())
	}

	_, err := Open("redis", dir)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDataDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "kinfolk"), dir)
	assert.DirExists(t, dir)
}
