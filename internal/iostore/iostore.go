// Package iostore implements store.Store for PostgreSQL, SQLite and MySQL.
// This is an impure I/O package.
package iostore

import (
	"context"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gnames/persload/internal/iodb"
	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/schema"
	"github.com/gnames/persload/pkg/store"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// Open connects to the database selected by cfg.Driver.
// PostgreSQL tables must exist already (see 'persload create'), SQLite and
// MySQL tables are created when missing.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case "postgres":
		return openPostgres(ctx, cfg)
	case "sqlite":
		return openSQLite(ctx, cfg)
	case "mysql":
		return openMySQL(ctx, cfg)
	default:
		return nil, UnknownDriverError(cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	missing, err := op.MissingTables(ctx)
	if err != nil {
		op.Close()
		return nil, err
	}
	if len(missing) > 0 {
		op.Close()
		return nil, iodb.MissingTablesError(cfg.Database, missing)
	}

	slog.Info("Connected to PostgreSQL",
		"host", cfg.Host, "database", cfg.Database)
	return newPgStore(op), nil
}

func openSQLite(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, ConnectionError("sqlite", path, err)
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, ConnectionError("sqlite", path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	res := newSQLStore(db, schema.SQLite)
	if err = res.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, SchemaError("sqlite", err)
	}

	slog.Info("Opened SQLite database", "path", path)
	return res, nil
}

func openMySQL(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dsn := mysqlConfig(cfg).FormatDSN()

	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, ConnectionError("mysql", addr, err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	res := newSQLStore(db, schema.MySQL)
	if err = res.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, SchemaError("mysql", err)
	}

	slog.Info("Connected to MySQL", "address", addr, "database", cfg.Database)
	return res, nil
}

func mysqlConfig(cfg *config.DatabaseConfig) *mysql.Config {
	res := mysql.NewConfig()
	res.User = cfg.User
	res.Passwd = cfg.Password
	res.Net = "tcp"
	res.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	res.DBName = cfg.Database
	res.ParseTime = true
	// count matched rows on UPDATE, not changed ones
	res.ClientFoundRows = true
	switch cfg.SSLMode {
	case "require":
		res.TLSConfig = "skip-verify"
	case "verify-ca", "verify-full":
		res.TLSConfig = "true"
	}
	return res
}
