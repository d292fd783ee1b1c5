// Package offsetgrid provides auto-growing, integer-offset-indexed dense
// containers: Vector, a contiguous sequence addressable by a column index
// offset from an arbitrary (possibly negative) minimum, and Matrix, a dense
// sequence of such vectors addressable by a row index with the same growth
// discipline.
//
// Both containers grow on demand at either end, keep their backing storage
// dense and contiguous, and return a configurable default value for any
// unset or out-of-range position. Lookups are total: Get never fails.
//
// The persistence subpackage serializes a matrix to a fixed flat binary
// layout; the blobstore subpackage stores such snapshots locally, in
// memory, or on S3-compatible object storage.
package offsetgrid
