package persistence

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/offsetgrid"
	"github.com/hupe1980/offsetgrid/blobstore"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Snapshot envelope: one compression-type byte, then the matrix stream of
// doc.go, optionally compressed. Compression exists only on the blob
// store transport path; SaveFile/LoadFile always write the raw layout.

type snapshotOptions struct {
	compression CompressionType
}

// SnapshotOption configures store-directed snapshot writes.
type SnapshotOption func(*snapshotOptions)

// WithCompression selects the compression applied to the snapshot payload.
// The default is CompressionNone.
func WithCompression(c CompressionType) SnapshotOption {
	return func(o *snapshotOptions) {
		o.compression = c
	}
}

// SaveToStore writes the matrix as a named snapshot blob.
func SaveToStore[T Element](ctx context.Context, store blobstore.BlobStore, name string, m *offsetgrid.Matrix[T], opts ...SnapshotOption) error {
	o := snapshotOptions{compression: CompressionNone}
	for _, opt := range opts {
		opt(&o)
	}

	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	err = writeSnapshot(w, m, o.compression)
	if err != nil {
		_ = w.Close()
	} else {
		err = w.Close()
	}

	m.Logger().LogSave(ctx, name, m.Values(), err)
	return err
}

func writeSnapshot[T Element](w io.Writer, m *offsetgrid.Matrix[T], compression CompressionType) error {
	if _, err := w.Write([]byte{byte(compression)}); err != nil {
		return err
	}

	switch compression {
	case CompressionNone:
		return Save(w, m)

	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if err := Save(zw, m); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()

	case CompressionZSTD:
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if err := Save(zw, m); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()

	default:
		return fmt.Errorf("%w: %d", ErrInvalidCompression, compression)
	}
}

// LoadFromStore reads a named snapshot blob into m, replacing its contents.
func LoadFromStore[T Element](ctx context.Context, store blobstore.BlobStore, name string, m *offsetgrid.Matrix[T]) error {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	err = readSnapshot(blobstore.Reader(ctx, blob), m)
	m.Logger().LogLoad(ctx, name, m.Len(), m.Values(), err)
	return err
}

func readSnapshot[T Element](r io.Reader, m *offsetgrid.Matrix[T]) error {
	var typ [1]byte
	if _, err := io.ReadFull(r, typ[:]); err != nil {
		return eofErr(err)
	}

	switch CompressionType(typ[0]) {
	case CompressionNone:
		return Load(r, m)

	case CompressionLZ4:
		return Load(lz4.NewReader(r), m)

	case CompressionZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return err
		}
		defer zr.Close()
		return Load(zr, m)

	default:
		return fmt.Errorf("%w: %d", ErrInvalidCompression, typ[0])
	}
}
