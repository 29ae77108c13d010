package imagecache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "images")
	store := NewLocalStore(dir)

	exists, err := store.Exists(ctx, "a.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, "a.jpg", strings.NewReader("first")))

	exists, err = store.Exists(ctx, "a.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("existing file is kept", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "a.jpg", strings.NewReader("second")))
		content, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "first", string(content))
	})

	t.Run("no temporary files left", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.jpg", entries[0].Name())
	})
}

func TestLocalStoreLocation(t *testing.T) {
	assert.Equal(t, "images/hulk.jpg", NewLocalStore("images").Location("hulk.jpg"))
}
