package cmd

import (
	"context"
	"fmt"
	"os"

	"imgdiff/core/storage"
	"imgdiff/feature/batch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	diffOpts    batch.Options
	diffStorage storageFlags
)

// diffCmd compares a single pair of images or, with --batch, two collections.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare two images or two image batches",
	Long: `Compare images from A against the reference images in B.

Locators are file:// or s3:// URIs; plain paths are resolved against the
working directory.

Examples:
  # Compare two screenshots and write the diff image
  imgdiff diff --a=home.png --b=ref/home.png --write

  # Reconcile two batches and store the report
  imgdiff diff --batch --a=s3://shots/run-42 --b=s3://shots/main \
    --write=s3://shots/main --json-report=report.json,s3://reports/latest.json

  # Fail with status 2 when anything changed
  imgdiff diff --batch --a=out --b=ref --exit-code`,
	RunE: runDiff,
}

func init() {
	fs := diffCmd.Flags()
	fs.StringVar(&diffOpts.A, "a", "", "Candidate image or batch root")
	fs.StringVar(&diffOpts.B, "b", "", "Reference image or batch root")
	fs.BoolVar(&diffOpts.Batch, "batch", false, "Reconcile two collections instead of a single pair")
	fs.StringVar(&diffOpts.Write, "write", "", "Sink root for diff and reference images")
	fs.Lookup("write").NoOptDefVal = "."
	fs.StringVar(&diffOpts.DiffPattern, "diff", "", "Diff image name pattern, [name] is replaced by the keyname")
	fs.StringVar(&diffOpts.JSONReport, "json-report", "", "Comma-separated report sinks")
	fs.Float64Var(&diffOpts.Threshold, "threshold", 0, "Pixel comparison threshold in [0,1]")
	fs.BoolVar(&diffOpts.ExitCode, "exit-code", false, "Exit with status 2 when changes are detected")
	fs.BoolVar(&diffOpts.Silent, "silent", false, "Only log errors")
	diffStorage.register(fs)

	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	diffStorage.apply(cmd.Flags(), &cfg.Storage)

	opts := diffOpts
	if !cmd.Flags().Changed("threshold") {
		opts.Threshold = cfg.Diff.Threshold
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	svc := batch.NewService(storage.NewFactory(cfg.Storage), cfg.Diff, cwd, l)

	if opts.Batch {
		_, err := svc.Batch(ctx, opts)
		return err
	}

	verdict, err := svc.Single(ctx, opts)
	if err != nil {
		return err
	}
	if !opts.Silent {
		l.Info("Single comparison", zap.Bool("match", verdict.Match), zap.Int("pixels", verdict.Pixels))
	}
	return nil
}
