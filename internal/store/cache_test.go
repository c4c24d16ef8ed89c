package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openCache(t *testing.T) *PasswordCache {
	t.Helper()
	c, err := OpenPasswordCache(filepath.Join(t.TempDir(), "found.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPasswordCacheRoundTrip(t *testing.T) {
	c := openCache(t)

	_, ok, err := c.Get("vault.pdf")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Put("vault.pdf", "hunter2"))

	pw, ok, err := c.Get("vault.pdf")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hunter2", pw)
}

func TestPasswordCacheDelete(t *testing.T) {
	c := openCache(t)

	require.NoError(t, c.Put("vault.pdf", "hunter2"))
	require.NoError(t, c.Delete("vault.pdf"))

	_, ok, err := c.Get("vault.pdf")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent entry is not an error.
	require.NoError(t, c.Delete("vault.pdf"))
}

func TestPasswordCacheKeysByAbsolutePath(t *testing.T) {
	c := openCache(t)

	require.NoError(t, c.Put("./docs/vault.pdf", "hunter2"))

	pw, ok, err := c.Get("docs/vault.pdf")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hunter2", pw)
}
