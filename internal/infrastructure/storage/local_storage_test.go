package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStorage(t *testing.T) {
	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "public", "upload")
		s, err := NewLocalStorage(&LocalStorageConfig{BasePath: dir})
		require.NoError(t, err)
		assert.DirExists(t, dir)
		assert.Equal(t, dir, s.BasePath())
		assert.Equal(t, "local", s.Name())
	})
}

func TestLocalStorage_PutGet(t *testing.T) {
	s, err := NewLocalStorage(&LocalStorageConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a1.pdf", []byte("%PDF-1.4"), "application/pdf"))

	obj, err := s.Get(ctx, "a1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(obj.Data))
	assert.Equal(t, "application/pdf", obj.ContentType)

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "logo.png", []byte("v1"), "image/png"))
		require.NoError(t, s.Put(ctx, "logo.png", []byte("v2"), "image/png"))

		obj, err := s.Get(ctx, "logo.png")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(obj.Data))
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		entries, err := os.ReadDir(s.BasePath())
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".upload-")
		}
	})
}

func TestLocalStorage_GetMissing(t *testing.T) {
	s, err := NewLocalStorage(&LocalStorageConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(&LocalStorageConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../etc/passwd", "sub/file.pdf", `..\win.ini`, "."} {
		t.Run(key, func(t *testing.T) {
			_, err := s.Get(ctx, key)
			assert.ErrorIs(t, err, ErrInvalidKey)
			assert.ErrorIs(t, s.Put(ctx, key, []byte("x"), ""), ErrInvalidKey)
		})
	}
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	s, err := NewLocalStorage(&LocalStorageConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Put(ctx, "a.pdf", []byte("x"), ""), context.Canceled)
	_, err = s.Get(ctx, "a.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestContainsDotDot(t *testing.T) {
	assert.True(t, containsDotDot(".."))
	assert.True(t, containsDotDot("a/../b"))
	assert.True(t, containsDotDot(`a\..\b`))
	assert.False(t, containsDotDot("a..b.pdf"))
	assert.False(t, containsDotDot("file.pdf"))
}
