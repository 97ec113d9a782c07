// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("runs/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	err = archive.Save(ctx, store, "palette.kmr", res)
//
// # Features
//
//   - Multipart uploads for large archives
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints (LocalStack, S3-compatible gateways)
package s3
