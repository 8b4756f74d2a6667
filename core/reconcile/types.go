package reconcile

import "context"

// Verdict is the outcome of comparing two same-key resources.
type Verdict struct {
	// Pixels is the number of mismatching pixels.
	Pixels int
	// Match is true iff Pixels is zero.
	Match bool
	// Diff holds the PNG-encoded diff image.
	Diff []byte
}

// Saver persists named artifacts below a sink root.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) error
}

// DefaultDiffPattern names diff artifacts after their keyname.
const DefaultDiffPattern = "[name].diff.png"
