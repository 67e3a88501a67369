package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	v, found, err := s.Get(context.Background(), "todos")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestStore_SetThenGet(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "todos", `[{"id":"1"}]`))
	require.NoError(t, s.Set(ctx, "todos", `[]`))

	v, found, err := s.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)

	b, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	assert.DirExists(t, dir)
}

func TestStore_RejectsPathKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../x", "a/b", `a\b`, ".."} {
		assert.Error(t, s.Set(ctx, key, "v"), key)
		_, _, err := s.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "todos", "[]"), context.Canceled)
	_, _, err = s.Get(ctx, "todos")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ReadError(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	// a directory where the file should be makes ReadFile fail with something other than ErrNotExist
	require.NoError(t, os.Mkdir(filepath.Join(dir, "todos.json"), 0o755))

	_, found, err := s.Get(context.Background(), "todos")
	assert.Error(t, err)
	assert.False(t, found)
}
