// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object stores via the native MinIO client.
//
// Prefer this package over blobstore/s3 when targeting self-hosted
// MinIO: the native client speaks the S3 dialect MinIO serves without
// the AWS credential and region machinery.
package minio
