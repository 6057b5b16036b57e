package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "persload"

	// RequiredColumns are the header columns every input file must have.
	RequiredColumns = []string{"name", "surname", "age", "office"}
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/persload by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for data files, such as the default
// SQLite database.
// Returns ~/.local/share/persload by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/persload/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/persload/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLiteFilePath returns the default location of the SQLite database.
// Returns ~/.local/share/persload/persload.sqlite by default.
func SQLiteFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), AppName+".sqlite")
}
