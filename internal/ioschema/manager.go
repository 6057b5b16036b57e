// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/db"
	"github.com/gnames/persload/pkg/lifecycle"
	"github.com/gnames/persload/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using
// GORM AutoMigrate and checks that every table exists.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	// Run GORM AutoMigrate to create schema
	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	return m.checkTables(ctx)
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	// Run GORM AutoMigrate
	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return m.checkTables(ctx)
}

func (m *manager) gorm() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	db := stdlib.OpenDBFromPool(pool)

	// Connect with GORM
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

// checkTables makes sure AutoMigrate created all tables.
func (m *manager) checkTables(ctx context.Context) error {
	for _, v := range schema.DDLModels() {
		table := v.TableName()
		exists, err := m.operator.TableExists(ctx, table)
		if err != nil {
			return MissingTableError(table, err)
		}
		if !exists {
			return MissingTableError(table, nil)
		}
		slog.Debug("Table is ready", "table", table)
	}
	return nil
}
