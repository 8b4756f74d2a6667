// Package config provides configuration management for imgdiff.
//
// It uses godotenv to overload a .env file into the environment and Viper to
// map environment variables onto the configuration tree. Defaults come from
// the `default` struct tags of each partial configuration.
//
// # Configuration Structure
//
//   - Storage: object-store endpoint and credentials
//   - Log: logging level and format
//   - Diff: comparison threshold and diff artifact pattern
//   - Server: HTTP port, API key and allowed roots
//   - Database: optional run history connection
//
// Command line flags override the loaded values.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Diff.Threshold)
package config
