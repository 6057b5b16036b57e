package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/persload/pkg/errcode"
)

// UnknownDriverError is returned for an unsupported database driver.
func UnknownDriverError(driver string) error {
	msg := `Unknown database driver <em>%s</em>

Supported drivers: postgres, sqlite, mysql`

	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// ConnectionError is returned when a sqlite or mysql database cannot be
// opened.
func ConnectionError(driver, target string, err error) error {
	msg := `Cannot open <em>%s</em> database at <em>%s</em>

<em>How to fix:</em>
  1. Check database settings in ~/.config/persload/config.yaml
  2. Make sure the server is running (mysql) or the directory is
     writable (sqlite)`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{driver, target},
		Err: fmt.Errorf("from %s: cannot open %s database: %w",
			fn.Name(), driver, err),
	}
}

// SchemaError is returned when tables cannot be prepared.
func SchemaError(driver string, err error) error {
	msg := "Cannot prepare persload tables in <em>%s</em> database"

	return &gn.Error{
		Code: errcode.DBSchemaError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("failed to create %s schema: %w", driver, err),
	}
}
