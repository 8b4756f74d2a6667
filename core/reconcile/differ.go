package reconcile

import (
	"context"
	"fmt"

	"imgdiff/core/imagediff"
	"imgdiff/core/resource"

	"go.uber.org/zap"
)

// Differ compares the images behind two handles.
type Differ struct {
	threshold float64
	logger    *zap.Logger
}

// NewDiffer creates a Differ forwarding threshold to every comparison.
func NewDiffer(threshold float64, logger *zap.Logger) *Differ {
	return &Differ{threshold: threshold, logger: logger}
}

// Threshold returns the comparison threshold.
func (d *Differ) Threshold() float64 { return d.threshold }

// Diff fetches and decodes both images and compares them. The output
// dimensions are taken from a; images of different size fail with
// imagediff.ErrSizeMismatch.
func (d *Differ) Diff(ctx context.Context, a, b *resource.Handle) (Verdict, error) {
	d.logger.Info("Processing",
		zap.String("key", a.Keyname()),
		zap.String("a", a.URI()),
		zap.String("b", b.URI()))

	dataA, err := a.Fetch(ctx, false)
	if err != nil {
		return Verdict{}, err
	}
	dataB, err := b.Fetch(ctx, false)
	if err != nil {
		return Verdict{}, err
	}

	imgA, err := imagediff.Decode(dataA, a.URI())
	if err != nil {
		return Verdict{}, err
	}
	imgB, err := imagediff.Decode(dataB, b.URI())
	if err != nil {
		return Verdict{}, err
	}

	out := imagediff.NewBitmap(imgA.Width, imgA.Height)
	pixels, err := imagediff.Compare(imgA.Pix, imgB.Pix, out.Pix, imgA.Width, imgA.Height, imagediff.DefaultOptions(d.threshold))
	if err != nil {
		return Verdict{}, fmt.Errorf("compare %s: %w", a.Keyname(), err)
	}

	encoded, err := imagediff.Encode(out)
	if err != nil {
		return Verdict{}, err
	}

	v := Verdict{Pixels: pixels, Match: pixels == 0, Diff: encoded}
	d.logger.Info("Result",
		zap.String("key", a.Keyname()),
		zap.Bool("match", v.Match),
		zap.Int("pixels", v.Pixels))
	return v, nil
}
