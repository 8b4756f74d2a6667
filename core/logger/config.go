package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level emitted. "debug" switches to the development preset.
	Level string `mapstructure:"level" default:"info"`
	// Format is either "console" or "json".
	Format string `mapstructure:"format" default:"console"`
}
