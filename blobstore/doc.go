// Package blobstore abstracts storage of matrix snapshots as named blobs.
//
// A BlobStore provides random-access reads (Blob), streaming writes
// (WritableBlob), and atomic whole-blob writes (Put). Implementations
// exist for the local filesystem (memory-mapped reads), plain memory
// (testing), and S3-compatible object storage (see the s3 and minio
// subpackages). Decorators add block-level caching (CachingStore) and
// byte-rate throttling (ThrottledStore).
//
// Unlike the containers they store, blob stores are safe for concurrent
// use.
package blobstore
