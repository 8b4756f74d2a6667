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
	copyOpts    batch.CopyOptions
	copyStorage storageFlags
)

// copyCmd mirrors a batch of images into another sink.
var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy every image of a batch into a sink",
	Long: `Copy every PNG found below --from into --to under its file name.
Typically used to promote a candidate batch to the new reference set.

Example:
  imgdiff copy --from=s3://shots/run-42 --to=s3://shots/main`,
	RunE: runCopy,
}

func init() {
	fs := copyCmd.Flags()
	fs.StringVar(&copyOpts.From, "from", "", "Source batch root")
	fs.StringVar(&copyOpts.To, "to", "", "Destination sink root")
	fs.BoolVar(&copyOpts.Silent, "silent", false, "Only log errors")
	copyStorage.register(fs)

	RootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	copyStorage.apply(cmd.Flags(), &cfg.Storage)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}

	svc := batch.NewService(storage.NewFactory(cfg.Storage), cfg.Diff, cwd, l)
	n, err := svc.Copy(context.Background(), copyOpts)
	if err != nil {
		return err
	}
	if !copyOpts.Silent {
		l.Info("Batch copy finished", zap.Int("copied", n), zap.String("to", copyOpts.To))
	}
	return nil
}
