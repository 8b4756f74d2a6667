package reconcile

// Config holds the comparison settings.
type Config struct {
	// Threshold is the per-pixel colour distance tolerance in [0,1].
	Threshold float64 `mapstructure:"threshold" default:"0.1"`
	// Pattern names diff artifacts; "[name]" is replaced by the keyname.
	Pattern string `mapstructure:"pattern" default:"[name].diff.png"`
}
