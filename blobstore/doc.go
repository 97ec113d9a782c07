// Package blobstore provides the storage abstraction for run archives.
//
// Store is the interface for reading and writing named, immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and short-lived tools
//   - LocalStore: local filesystem with atomic writes
//   - s3.Store: Amazon S3 (multipart uploads, paginated listing)
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
//	type Store interface {
//	    Put(ctx, name, data) error
//	    Get(ctx, name) ([]byte, error)
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Get must return an error satisfying errors.Is(err, ErrNotFound) for missing
// blobs. Delete of a missing blob is not an error.
package blobstore
