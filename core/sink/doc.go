// Package sink persists artifacts and reports to file:// or s3:// locators.
//
// Writer implements report.Writer. Filesystem writes create missing parent
// directories; object-store writes set the content type from the extension
// and mark the object public-read. Object-store clients are created lazily,
// one per bucket, through a storage.Factory.
//
// Saver binds a Writer to a sink root so callers can persist artifacts by
// name ("login.diff.png") without rebuilding locators.
package sink
