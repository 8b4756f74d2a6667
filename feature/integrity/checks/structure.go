package checks

import (
	"context"
	"errors"
	"fmt"
	"os"

	"imgdiff/core/collection"
	"imgdiff/core/locator"
	"imgdiff/core/storage"
)

// ErrRootMissing is returned when a batch root does not exist.
var ErrRootMissing = errors.New("batch root does not exist")

// CheckRoot verifies that the root of src exists: the directory for
// file:// roots, the bucket for s3:// roots.
func CheckRoot(ctx context.Context, src *collection.Source) error {
	root := src.Root()

	switch root.Kind {
	case locator.KindFile:
		fi, err := os.Stat(root.Path)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootMissing, root.Raw)
		}
		if err != nil {
			return storage.WrapIO("stat", root.Raw, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrRootMissing, root.Raw)
		}
	case locator.KindObject:
		exists, err := src.Client().BucketExists(ctx, root.Bucket)
		if err != nil {
			return storage.WrapIO("bucket", root.Raw, err)
		}
		if !exists {
			return fmt.Errorf("%w: bucket %s", ErrRootMissing, root.Bucket)
		}
	}
	return nil
}
