package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(ctx, "missing.bin")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, "grids/snap.bin", []byte("payload")))

	blob, err := store.Open(ctx, "grids/snap.bin")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(7), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 3)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "load", string(buf))

	require.NoError(t, store.Delete(ctx, "grids/snap.bin"))
	require.NoError(t, store.Delete(ctx, "grids/snap.bin")) // idempotent
}

func TestLocalStore_CreateAtomic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStore(dir)

	w, err := store.Create(ctx, "snap.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("abc"))
	require.NoError(t, err)

	// The target must not exist while the write is staged.
	_, err = os.Stat(filepath.Join(dir, "snap.bin"))
	require.True(t, os.IsNotExist(err))

	require.NoError(t, w.Close())

	data, err := os.ReadFile(filepath.Join(dir, "snap.bin"))
	require.NoError(t, err)
	require.Equal(t, "abc", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestLocalStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "grids/a.bin", []byte("a")))
	require.NoError(t, store.Put(ctx, "grids/b.bin", []byte("b")))
	require.NoError(t, store.Put(ctx, "c.bin", []byte("c")))

	names, err := store.List(ctx, "grids/")
	require.NoError(t, err)
	require.Equal(t, []string{"grids/a.bin", "grids/b.bin"}, names)
}

func TestLocalBlob_Mappable(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "snap.bin", []byte("mapped")))

	blob, err := store.Open(ctx, "snap.bin")
	require.NoError(t, err)
	defer blob.Close()

	m, ok := blob.(Mappable)
	require.True(t, ok)

	data, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, "mapped", string(data))
}
