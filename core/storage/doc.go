// Package storage provides an abstraction layer for S3-compatible object stores.
//
// It wraps the MinIO Go client behind the Client interface so the rest of the
// pipeline (collection hydration, resource fetches, sink writes) can be tested
// against the testify mock in core/storage/mocks. Both AWS S3 and self-hosted
// MinIO or Ceph endpoints are supported.
//
// # Operations
//
//   - ListObjects: lists objects in a bucket (prefix, recursive).
//   - GetObject: retrieves content as a stream.
//   - PutObject: uploads content (with size, content type and metadata).
//   - StatObject: reads object metadata.
//   - BucketExists: verifies access to a bucket.
//
// # Client ownership
//
// A Factory builds one Client per batch root. The two roots of a batch never
// share a client, even when they point at the same endpoint.
//
// # Usage
//
//	factory := storage.NewFactory(cfg.Storage)
//	client, err := factory()
//	for obj := range client.ListObjects(ctx, "snapshots", minio.ListObjectsOptions{Recursive: true}) {
//	    ...
//	}
package storage
