// Package server holds the HTTP server configuration.
//
// The serve command builds the Fiber application itself; this package only
// defines the listen port, the API key and the locator roots that remote
// callers may reconcile.
package server
