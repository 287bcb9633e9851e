// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("charts/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = snapshot.Save(ctx, store, "wsj-0001.ccgc", chart)
//
// # Features
//
//   - Range reads for partial fetches
//   - CRC32C checksums on single-part uploads
//   - Multipart uploads for large snapshots
//   - Automatic pagination for listing
package s3
