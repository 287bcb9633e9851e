// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible services (Ceph, SeaweedFS,
// Garage) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.Dial("localhost:9000", "minioadmin", "minioadmin", false,
//	    "my-bucket", "charts/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = snapshot.Save(ctx, store, "wsj-0001.ccgc", chart)
//
// Use NewStore to supply a preconfigured *minio.Client instead.
package minio
