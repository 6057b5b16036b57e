// Package config provides configuration management for persload.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode, path
//   - Load: batch_size, encoding
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Load.FilePath, DryRun, ErrorLogPath, WithProgress (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PERSLOAD_ prefix with underscores for nesting:
//
//	PERSLOAD_DATABASE_DRIVER=sqlite
//	PERSLOAD_DATABASE_HOST=localhost
//	PERSLOAD_LOAD_BATCH_SIZE=1000
//	PERSLOAD_LOG_LEVEL=info
package config

// Config represents the complete persload configuration.
type Config struct {
	// Database contains storage connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Load contains settings of the load command.
	Load LoadConfig `mapstructure:"load" yaml:"load"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains storage connection parameters.
type DatabaseConfig struct {
	// Driver selects the storage backend.
	// Valid values: "postgres", "sqlite", "mysql".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the database server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the database server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode (PostgreSQL only).
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the database file location for the sqlite driver.
	// If empty, a file in the data directory is used.
	Path string `mapstructure:"path" yaml:"path"`
}

// LoadConfig contains settings of the load command.
type LoadConfig struct {
	// BatchSize is the number of new persons inserted per bulk insert.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// Encoding of the input CSV file. Any WHATWG or IANA name is accepted,
	// for example "utf-8", "windows-1252", "iso-8859-15".
	Encoding string `mapstructure:"encoding" yaml:"encoding"`

	// FilePath is the input CSV or XLSX file.
	FilePath string `mapstructure:"-" yaml:"-"`

	// DryRun validates and reconciles the input without storage writes.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// ErrorLogPath is an optional CSV file that receives every row error
	// as soon as it is found. When empty, errors are summarized on screen.
	ErrorLogPath string `mapstructure:"-" yaml:"-"`

	// WithProgress shows a progress bar while the input is read.
	WithProgress bool `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "persload",
			SSLMode:  "disable",
		},
		Load: LoadConfig{
			BatchSize:    500,
			Encoding:     "utf-8",
			WithProgress: true,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// Masked returns a copy of the config that is safe to show to a user.
func (c *Config) Masked() Config {
	res := *c
	if res.Database.Password != "" {
		res.Database.Password = "********"
	}
	return res
}
