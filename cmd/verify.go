package cmd

import (
	"context"
	"fmt"
	"os"

	"imgdiff/core/storage"
	"imgdiff/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verifyRoot    string
	verifyStorage storageFlags
)

// verifyCmd checks a batch root before it is used in a run.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that a batch root exists and its images decode",
	Long: `Check a batch root for problems that would break or distort a batch run:
a missing directory or bucket, PNG files that do not decode and several files
sharing one keyname.

Example:
  imgdiff verify --root=s3://shots/run-42`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyRoot, "root", "", "Batch root to check")
	verifyStorage.register(verifyCmd.Flags())
	RootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if verifyRoot == "" {
		return fmt.Errorf("'root' not specified, use --root=<uri>")
	}

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	verifyStorage.apply(cmd.Flags(), &cfg.Storage)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	svc := integrity.NewService(storage.NewFactory(cfg.Storage), cwd, l)
	rep, err := svc.Check(context.Background(), verifyRoot)
	if err != nil {
		return err
	}

	for _, uri := range rep.Images.Undecodable {
		l.Warn("Undecodable image", zap.String("uri", uri))
	}
	for key, uris := range rep.Images.Collisions {
		l.Warn("Keyname collision", zap.String("keyname", key), zap.Strings("uris", uris))
	}
	if rep.Status != integrity.StatusOK {
		return fmt.Errorf("integrity issues found in %s", rep.Root)
	}
	return nil
}
