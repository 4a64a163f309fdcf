package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), "/storage/", zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestDiskStore_UploadAndRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	url, err := store.Upload(ctx, "categories/snacks.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/storage/categories/snacks.png", url)

	data, err := os.ReadFile(filepath.Join(store.Root(), "categories", "snacks.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(ctx, "categories/snacks.png"))
	_, err = os.Stat(filepath.Join(store.Root(), "categories", "snacks.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_RemoveMissingObjectIsNoError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Remove(context.Background(), "categories/gone.png"))
}

func TestDiskStore_ObjectPathRoundTrip(t *testing.T) {
	store := newTestStore(t)

	url := store.PublicURL("categories/snacks.png")
	p, ok := store.ObjectPath(url)
	require.True(t, ok)
	assert.Equal(t, "categories/snacks.png", p)

	// Absolute URLs from another host still resolve as long as the
	// public prefix is present.
	p, ok = store.ObjectPath("https://cdn.example.com/storage/products/1.png")
	require.True(t, ok)
	assert.Equal(t, "products/1.png", p)

	_, ok = store.ObjectPath("https://elsewhere.example.com/images/1.png")
	assert.False(t, ok)
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload(context.Background(), "../outside.png", strings.NewReader("x"))
	assert.Error(t, err)
}
