// Package resource implements the per-image handle used by the batch pipeline.
//
// A Handle carries the identity of one image resource (locator, basename,
// keyname), its backend addressing, and a lazily populated byte cache. The
// backend is a closed set selected once from the locator kind: filesystem
// handles read local files, object handles download through a
// storage.Client. There is no runtime capability probing.
//
// Handles are not safe for concurrent use. A handle is owned by exactly one
// pipeline step at a time, so the cache needs no locking.
package resource
