package blobstore

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/offsetgrid/internal/cache"
	"github.com/hupe1980/offsetgrid/testutil"
	"github.com/stretchr/testify/require"
)

// countingStore counts backend ReadAt calls so tests can observe
// which reads the cache absorbed.
type countingStore struct {
	BlobStore
	reads atomic.Int64
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.BlobStore.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &countingBlob{Blob: b, reads: &s.reads}, nil
}

type countingBlob struct {
	Blob
	reads *atomic.Int64
}

func (b *countingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	b.reads.Add(1)
	return b.Blob.ReadAt(ctx, p, off)
}

func TestCachingStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)

	payload := make([]byte, 10*1024)
	rng.FillBytes(payload)

	backend := &countingStore{BlobStore: NewMemoryStore()}
	require.NoError(t, backend.Put(ctx, "snap.bin", payload))

	store := NewCachingStore(backend, cache.NewLRUBlockCache(1<<20), 4096)

	blob, err := store.Open(ctx, "snap.bin")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(payload)), blob.Size())

	// First read spans three blocks and coalesces into one backend fetch.
	buf := make([]byte, len(payload))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.Equal(t, payload, buf)
	require.Equal(t, int64(1), backend.reads.Load())

	// Second read is served entirely from cache.
	n, err = blob.ReadAt(ctx, buf[:100], 5000)
	require.NoError(t, err)
	require.Equal(t, 100, n)
	require.Equal(t, payload[5000:5100], buf[:100])
	require.Equal(t, int64(1), backend.reads.Load())
}

func TestCachingStore_CoalescesMissingRuns(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)

	payload := make([]byte, 8*4096)
	rng.FillBytes(payload)

	backend := &countingStore{BlobStore: NewMemoryStore()}
	require.NoError(t, backend.Put(ctx, "snap.bin", payload))

	blockCache := cache.NewLRUBlockCache(1 << 20)
	store := NewCachingStore(backend, blockCache, 4096)

	blob, err := store.Open(ctx, "snap.bin")
	require.NoError(t, err)
	defer blob.Close()

	// Warm blocks 2 and 5.
	buf := make([]byte, 10)
	_, err = blob.ReadAt(ctx, buf, 2*4096)
	require.NoError(t, err)
	_, err = blob.ReadAt(ctx, buf, 5*4096)
	require.NoError(t, err)
	require.Equal(t, int64(2), backend.reads.Load())

	// A full read now has three missing runs: [0,1], [3,4], [6,7].
	full := make([]byte, len(payload))
	n, err := blob.ReadAt(ctx, full, 0)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)
	require.Equal(t, payload, full)
	require.Equal(t, int64(5), backend.reads.Load())
}

func TestCachingStore_RandomOffsets(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(1234)

	payload := make([]byte, 100_000)
	rng.FillBytes(payload)

	backend := NewMemoryStore()
	require.NoError(t, backend.Put(ctx, "snap.bin", payload))

	store := NewCachingStore(backend, cache.NewLRUBlockCache(16*1024), 1024)

	blob, err := store.Open(ctx, "snap.bin")
	require.NoError(t, err)
	defer blob.Close()

	for i := 0; i < 200; i++ {
		off := rng.Intn(len(payload) - 1)
		size := rng.IntBetween(1, min(4096, len(payload)-off))

		buf := make([]byte, size)
		n, err := blob.ReadAt(ctx, buf, int64(off))
		require.NoError(t, err)
		require.Equal(t, size, n)
		require.Equal(t, payload[off:off+size], buf)
	}
}

func TestCachingStore_ShortLastBlock(t *testing.T) {
	ctx := context.Background()

	payload := []byte("0123456789") // 10 bytes, block size 4
	backend := NewMemoryStore()
	require.NoError(t, backend.Put(ctx, "snap.bin", payload))

	store := NewCachingStore(backend, cache.NewLRUBlockCache(1<<20), 4)

	blob, err := store.Open(ctx, "snap.bin")
	require.NoError(t, err)
	defer blob.Close()

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 8)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 2, n)
	require.Equal(t, "89", string(buf[:2]))
}

func TestCachingStore_InvalidateOnPut(t *testing.T) {
	ctx := context.Background()

	backend := NewMemoryStore()
	require.NoError(t, backend.Put(ctx, "snap.bin", []byte("old-contents")))

	store := NewCachingStore(backend, cache.NewLRUBlockCache(1<<20), 4)

	blob, err := store.Open(ctx, "snap.bin")
	require.NoError(t, err)

	buf := make([]byte, 3)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, "old", string(buf))
	require.NoError(t, blob.Close())

	require.NoError(t, store.Put(ctx, "snap.bin", []byte("new-contents")))

	blob, err = store.Open(ctx, "snap.bin")
	require.NoError(t, err)
	defer blob.Close()

	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, "new", string(buf))
}
