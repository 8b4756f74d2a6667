// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting every route except
//     the explicitly skipped ones.
//   - rayid: assigns each request a UUID ray id, stored in the fiber locals
//     for logger.WithRayID and echoed in the X-Ray-ID response header.
//
// Register rayid first so that every later log line carries the id.
package middleware
