// Package locator parses and classifies resource locators.
//
// A locator is a scheme-prefixed address of an image resource. Two schemes
// are supported:
//
//   - file://<absolute-path> for the local filesystem
//   - s3://<bucket>/<key> for an S3-compatible object store
//
// Any other scheme fails with an UnsupportedError. The package also owns the
// naming helpers shared by the rest of the pipeline (Basename, Keyname,
// DiffName) so that every backend derives the same join key for a resource.
//
// # Usage
//
//	loc, err := locator.Parse("s3://snapshots/main/login.png")
//	// loc.Kind == locator.KindObject, loc.Bucket == "snapshots", loc.Key == "main/login.png"
//
//	locator.Keyname(loc.Raw)                       // "login"
//	locator.DiffName("[name].diff.png", "login.png") // "login.diff.png"
package locator
