package persistence

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/offsetgrid"
	"github.com/hupe1980/offsetgrid/blobstore"
)

func TestSnapshot_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name        string
		compression CompressionType
	}{
		{"none", CompressionNone},
		{"lz4", CompressionLZ4},
		{"zstd", CompressionZSTD},
	} {
		t.Run(tc.name, func(t *testing.T) {
			store := blobstore.NewMemoryStore()
			want := buildMatrix()

			if err := SaveToStore(ctx, store, "snap.bin", want, WithCompression(tc.compression)); err != nil {
				t.Fatalf("SaveToStore failed: %v", err)
			}

			got := offsetgrid.New(int32(-1))
			if err := LoadFromStore(ctx, store, "snap.bin", got); err != nil {
				t.Fatalf("LoadFromStore failed: %v", err)
			}
			requireEqualMatrices(t, want, got)
		})
	}
}

func TestSnapshot_EnvelopeTypeByte(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	m := buildMatrix()

	if err := SaveToStore(ctx, store, "snap.bin", m, WithCompression(CompressionZSTD)); err != nil {
		t.Fatalf("SaveToStore failed: %v", err)
	}

	blob, err := store.Open(ctx, "snap.bin")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer blob.Close()

	var typ [1]byte
	if _, err := blob.ReadAt(ctx, typ[:], 0); err != nil {
		t.Fatalf("ReadAt failed: %v", err)
	}
	if CompressionType(typ[0]) != CompressionZSTD {
		t.Errorf("envelope type = %d, want %d", typ[0], CompressionZSTD)
	}
}

func TestSnapshot_CompressionShrinksRepetitiveData(t *testing.T) {
	ctx := context.Background()
	m := offsetgrid.New(int64(0))
	for col := 0; col < 4096; col++ {
		m.Set(0, col, 7)
	}

	plain := blobstore.NewMemoryStore()
	packed := blobstore.NewMemoryStore()
	if err := SaveToStore(ctx, plain, "a", m); err != nil {
		t.Fatalf("SaveToStore failed: %v", err)
	}
	if err := SaveToStore(ctx, packed, "a", m, WithCompression(CompressionLZ4)); err != nil {
		t.Fatalf("SaveToStore failed: %v", err)
	}

	rawBlob, _ := plain.Open(ctx, "a")
	lz4Blob, _ := packed.Open(ctx, "a")
	defer rawBlob.Close()
	defer lz4Blob.Close()

	if lz4Blob.Size() >= rawBlob.Size() {
		t.Errorf("lz4 snapshot (%d bytes) not smaller than raw (%d bytes)", lz4Blob.Size(), rawBlob.Size())
	}
}

func TestSnapshot_InvalidCompressionType(t *testing.T) {
	m := offsetgrid.New(int32(0))

	err := readSnapshot(bytes.NewReader([]byte{0xFF, 0, 0}), m)
	if !errors.Is(err, ErrInvalidCompression) {
		t.Errorf("expected ErrInvalidCompression, got %v", err)
	}

	if err := writeSnapshot(&bytes.Buffer{}, m, CompressionType(0xFF)); !errors.Is(err, ErrInvalidCompression) {
		t.Errorf("expected ErrInvalidCompression, got %v", err)
	}
}

func TestSnapshot_MissingBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	m := offsetgrid.New(int32(0))
	err := LoadFromStore(ctx, store, "nope", m)
	if !errors.Is(err, blobstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
