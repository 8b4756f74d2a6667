package batch

import (
	"errors"
	"fmt"

	"imgdiff/core/reconcile"
)

var (
	errNoFactory = errors.New("no object-store client configured")

	// ErrConfig is matched by every invalid option.
	ErrConfig = errors.New("invalid batch configuration")
	// ErrChangesDetected is returned in exit code mode when a run found
	// new, differing or removed resources.
	ErrChangesDetected = errors.New("changes detected")
)

// Options configures a diff run.
type Options struct {
	// A is the candidate root (batch) or resource (single).
	A string `json:"a"`
	// B is the reference root (batch) or resource (single).
	B string `json:"b"`
	// Batch selects collection mode.
	Batch bool `json:"batch"`
	// Write is the artifact sink root; empty disables persistence.
	Write string `json:"write"`
	// DiffPattern names diff artifacts. Empty falls back to the configured pattern.
	DiffPattern string `json:"diff"`
	// JSONReport is a comma-separated list of report sinks.
	JSONReport string `json:"json_report"`
	// Threshold is the pixel comparison tolerance in [0,1].
	Threshold float64 `json:"threshold"`
	// ExitCode turns a non-clean result into ErrChangesDetected.
	ExitCode bool `json:"exit_code"`
	// Silent drops informational logging for the run.
	Silent bool `json:"silent"`
}

// CopyOptions configures a batch copy.
type CopyOptions struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Silent bool   `json:"silent"`
}

func missing(key string) error {
	return fmt.Errorf("%w: '%s' not specified, use --%s=<uri>", ErrConfig, key, key)
}

// Validate checks required locators and the threshold range.
func (o Options) Validate() error {
	if o.A == "" {
		return missing("a")
	}
	if o.B == "" {
		return missing("b")
	}
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0,1]", ErrConfig, o.Threshold)
	}
	return nil
}

// Validate checks both copy locators.
func (o CopyOptions) Validate() error {
	if o.From == "" {
		return missing("from")
	}
	if o.To == "" {
		return missing("to")
	}
	return nil
}

func (o Options) pattern(cfg reconcile.Config) string {
	if o.DiffPattern != "" {
		return o.DiffPattern
	}
	if cfg.Pattern != "" {
		return cfg.Pattern
	}
	return reconcile.DefaultDiffPattern
}
