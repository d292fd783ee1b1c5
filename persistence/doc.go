// Package persistence serializes offset matrices to a flat binary layout.
//
// The stream format is, in order (little-endian, fixed-width integers, no
// magic number, no version, no checksum):
//
//	[total materialized cell count : uint64]
//	[matrix min row index          : int64]
//	[row count                     : uint64]
//	repeated row-count times, in ascending row-index order:
//	    [row min column index : int64]
//	    [row column count     : uint64]
//	    [column count × sizeof(T) raw element bytes, in column order]
//
// Row payloads are written and read as single contiguous byte blocks over
// the row's backing buffer, so the element type is constrained to
// fixed-width numeric types (Element). No per-element transformation is
// performed.
//
// Portability contract: the format carries no type tag and no checksum.
// The element type and its width must match between writer and reader;
// byte order is pinned to little-endian.
package persistence
