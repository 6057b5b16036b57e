// Package iodb keeps the PostgreSQL connection pool of persload and manages
// the persons and offices tables. This is an impure I/O package that
// implements db.Operator.
package iodb

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/db"
	"github.com/gnames/persload/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rows are reconciled one at a time, a small pool is enough for the
// loader and the schema manager.
const maxConns = 2

type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates an operator that is not connected yet.
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect opens the pool and pings the server.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	poolCfg, err := pgxpool.ParseConfig(connString(cfg))
	if err != nil {
		return ConnectionError(cfg, err)
	}
	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = 1
	poolCfg.ConnConfig.RuntimeParams["application_name"] = config.AppName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return ConnectionError(cfg, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg, err)
	}

	slog.Debug("PostgreSQL pool is ready",
		"host", cfg.Host, "database", cfg.Database, "max_conns", maxConns)
	p.pool = pool
	return nil
}

// connString builds a URL connection string. User and password are
// escaped, so they may contain '@', ':' or '/'.
func connString(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// TableExists checks a single table of the public schema.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	present, err := p.present(ctx, "TableExists", []string{tableName})
	if err != nil {
		return false, err
	}
	return present[tableName], nil
}

// ExistingTables returns persload tables found in the database, dependent
// tables first.
func (p *pgxOperator) ExistingTables(ctx context.Context) ([]string, error) {
	names := schema.DropOrder()
	present, err := p.present(ctx, "ExistingTables", names)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(names, func(s string) bool {
		return !present[s]
	}), nil
}

// MissingTables returns persload tables that still have to be created.
func (p *pgxOperator) MissingTables(ctx context.Context) ([]string, error) {
	names := schema.TableNames()
	present, err := p.present(ctx, "MissingTables", names)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(names, func(s string) bool {
		return present[s]
	}), nil
}

// DropTables removes persons and offices in one transaction. Tables that
// do not belong to persload stay untouched.
func (p *pgxOperator) DropTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError("DropTables")
	}

	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		for _, table := range schema.DropOrder() {
			q := "DROP TABLE IF EXISTS " +
				pgx.Identifier{table}.Sanitize() + " CASCADE"
			if _, err := tx.Exec(ctx, q); err != nil {
				return DropTableError(table, err)
			}
			slog.Info("Dropped table", "table", table)
		}
		return nil
	})
	var gnErr *gn.Error
	if err != nil && !errors.As(err, &gnErr) {
		// commit failed
		return DropTableError(strings.Join(schema.DropOrder(), ", "), err)
	}
	return err
}

// present returns which of the given tables exist in the public schema.
func (p *pgxOperator) present(
	ctx context.Context,
	op string,
	names []string,
) (map[string]bool, error) {
	if p.pool == nil {
		return nil, NotConnectedError(op)
	}

	q := `SELECT tablename FROM pg_tables
		WHERE schemaname = 'public' AND tablename = ANY($1)`
	rows, err := p.pool.Query(ctx, q, names)
	if err != nil {
		return nil, TableLookupError(names, err)
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, TableLookupError(names, err)
	}

	res := make(map[string]bool, len(tables))
	for _, v := range tables {
		res[v] = true
	}
	return res, nil
}
