package database

// Config holds configuration for the run history database.
type Config struct {
	// Enabled turns run history recording on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"imgdiff"`
	// TimeoutSeconds bounds connection setup and every read or write.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
