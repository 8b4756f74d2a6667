// Package logger provides a structured logging facility based on Zap.
//
// Batch runs log one line per listing, comparison and written artifact, plus
// a final report summary. When the HTTP surface is enabled, WithRayID attaches
// the request ray id set by the rayid middleware so that all entries of one
// request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Batch S3 object processing", zap.String("bucket", bucket))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Batch run failed", zap.Error(err))
package logger
