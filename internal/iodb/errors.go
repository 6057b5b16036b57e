package iodb

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/errcode"
)

// ConnectionError is returned when the PostgreSQL pool cannot be opened.
// The password is never part of the message.
func ConnectionError(cfg *config.DatabaseConfig, err error) error {
	msg := `Cannot connect to PostgreSQL at <em>%s:%d</em> as <em>%s</em>

<em>Possible causes:</em>
  - PostgreSQL is not running or <em>ssl_mode %s</em> is not accepted
  - Database <em>%s</em> does not exist

<em>How to fix:</em>
  1. Show the settings persload uses: <em>persload config</em>
  2. Create the database: createdb %s
  3. Or load into a local file: PERSLOAD_DATABASE_DRIVER=sqlite`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{
			cfg.Host, cfg.Port, cfg.User, cfg.SSLMode,
			cfg.Database, cfg.Database,
		},
		Err: fmt.Errorf("connect to postgres %s:%d/%s: %w",
			cfg.Host, cfg.Port, cfg.Database, err),
	}
}

// NotConnectedError is returned when op runs before Connect.
func NotConnectedError(op string) error {
	msg := "Cannot run <em>%s</em>, PostgreSQL is not connected"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("%s: not connected to database", op),
	}
}

// TableLookupError is returned when the catalog query for tables fails.
func TableLookupError(tables []string, err error) error {
	msg := "Cannot check tables <em>%s</em>"
	names := strings.Join(tables, ", ")

	return &gn.Error{
		Code: errcode.DBTableLookupError,
		Msg:  msg,
		Vars: []any{names},
		Err:  fmt.Errorf("look up tables %s: %w", names, err),
	}
}

// MissingTablesError is returned when persons or offices tables do not
// exist, so nothing can be loaded.
func MissingTablesError(database string, missing []string) error {
	msg := `Database <em>%s</em> has no <em>%s</em> table(s)

<em>How to fix:</em>
  - New database: <em>persload create</em>
  - Older persload schema: <em>persload migrate</em>`
	names := strings.Join(missing, ", ")

	return &gn.Error{
		Code: errcode.DBMissingTablesError,
		Msg:  msg,
		Vars: []any{database, names},
		Err: fmt.Errorf("database %s misses tables %s, run 'persload create'",
			database, names),
	}
}

// DropTableError is returned when persload tables cannot be dropped.
func DropTableError(table string, err error) error {
	msg := `Cannot drop <em>%s</em>

<em>Possible causes:</em>
  - The user does not own the table
  - Another session holds a lock on it`

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("drop table %s: %w", table, err),
	}
}
