package cmd

import (
	"errors"
	"fmt"
	"os"

	"imgdiff/core/config"
	"imgdiff/core/logger"
	"imgdiff/core/storage"
	"imgdiff/feature/batch"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// ExitChanges is the process status for runs that detected changes in
// exit code mode.
const ExitChanges = 2

var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "imgdiff",
	Short: "Visual regression reconciliation for image batches",
	Long: `imgdiff compares two batches of PNG screenshots stored on the local
filesystem or in an S3-compatible object store, matches them by file name and
reports new, differing, matching and removed images.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, batch.ErrChangesDetected) {
		os.Exit(ExitChanges)
	}

	// Console format with the development preset gives readable timestamps
	cfg := &logger.Config{
		Level:  "debug",
		Format: "console",
	}

	l, logErr := logger.New(cfg)
	if logErr == nil {
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
	} else {
		fmt.Println(err)
	}
	os.Exit(1)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
}

// storageFlags override the object-store section of the configuration.
type storageFlags struct {
	endpoint  string
	accessKey string
	secretKey string
	useSSL    bool
}

func (f *storageFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.endpoint, "endpoint", "", "S3 endpoint (host:port)")
	fs.StringVar(&f.accessKey, "access-key", "", "S3 access key")
	fs.StringVar(&f.secretKey, "secret-key", "", "S3 secret key")
	fs.BoolVar(&f.useSSL, "use-ssl", false, "Use TLS for the S3 endpoint")
}

func (f *storageFlags) apply(fs *pflag.FlagSet, cfg *storage.Config) {
	if fs.Changed("endpoint") {
		cfg.Endpoint = f.endpoint
	}
	if fs.Changed("access-key") {
		cfg.AccessKey = f.accessKey
	}
	if fs.Changed("secret-key") {
		cfg.SecretKey = f.secretKey
	}
	if fs.Changed("use-ssl") {
		cfg.UseSSL = f.useSSL
	}
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}
