// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Store keeps snapshots as S3 objects under a configurable key prefix,
// streaming uploads through the AWS SDK upload manager. CommitStore
// layers DynamoDB conditional writes on top to maintain an atomic
// "CURRENT" pointer to the latest snapshot, which plain S3 cannot
// provide on its own.
package s3
