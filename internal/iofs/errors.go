package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/persload/pkg/errcode"
)

// CreateDirError is returned when a config, data or log directory of
// persload cannot be made.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create persload directory <em>%s</em>

Config, the default SQLite database and logs live under the home
directory, it has to be writable.`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: mkdir %s: %w", fn.Name(), dir, err),
	}
}

// WriteConfigError is returned when the default config.yaml cannot be
// saved.
func WriteConfigError(path string, err error) error {
	msg := "Cannot save default settings to <em>%s</em>"
	return &gn.Error{
		Code: errcode.WriteConfigError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("write default config %s: %w", path, err),
	}
}

// ReadConfigError is returned when config.yaml cannot be read or does not
// match the persload settings.
func ReadConfigError(path string, err error) error {
	msg := `Cannot read settings from <em>%s</em>

<em>How to fix:</em>
  Correct the YAML, or delete the file to get the defaults back
  on the next run.`
	return &gn.Error{
		Code: errcode.ReadConfigError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("read config %s: %w", path, err),
	}
}
