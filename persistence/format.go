package persistence

import "errors"

var (
	// ErrUnexpectedEOF is returned when the stream ends before the counts
	// announced by its own headers are satisfied.
	ErrUnexpectedEOF = errors.New("unexpected end of stream")

	// ErrSizeMismatch is returned when the header's total cell count
	// disagrees with the cells actually described by the row headers.
	ErrSizeMismatch = errors.New("total cell count mismatch")

	// ErrCountOverflow is returned when a count in the stream cannot be
	// represented as an int on this platform.
	ErrCountOverflow = errors.New("count overflows int")

	// ErrInvalidCompression is returned for an unknown snapshot
	// compression type byte.
	ErrInvalidCompression = errors.New("invalid compression type")
)

// Element constrains the serialized element types to plain fixed-width
// numerics whose in-memory representation can be copied byte-for-byte.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// CompressionType defines the compression algorithm used for snapshots
// written through a blob store. The core file format is never compressed.
type CompressionType uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 frame compression (fast, good for hot data).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD stream compression (better ratio, good for cold data).
	CompressionZSTD CompressionType = 2
)
