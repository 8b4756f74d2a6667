// Package integrity validates batch roots before they are reconciled.
//
// A batch run aborts on the first undecodable image and silently keeps only
// one resource per keyname, so checking a root up front saves a failed or
// misleading run.
//
// # Checks Provided
//
//   - Root: the directory or bucket exists.
//   - Images: every listed PNG decodes; keynames shared by several resources
//     are reported as collisions.
//
// # HTTP Endpoints
//
//   - GET /integrity?root=<locator> : runs all checks on one root.
package integrity
