// Package database handles the optional MySQL connection used for run history.
//
// It wraps GORM and configures the connection pool and timeouts from the
// application's configuration. Batch runs never depend on it: when the
// connection fails the history feature is simply left disabled.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
