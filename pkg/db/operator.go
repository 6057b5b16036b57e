package db

import (
	"context"

	"github.com/gnames/persload/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the PostgreSQL connection of persload and the tables it
// owns. Other tables of the same database are never touched.
//
// Schema creation and migration are handled by GORM AutoMigrate via
// SchemaManager.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. The PostgreSQL store uses it
	// for transactions and CopyFrom bulk inserts.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// ExistingTables returns the persons and offices tables that are
	// present, in drop order.
	ExistingTables(ctx context.Context) ([]string, error)

	// MissingTables returns the persons and offices tables that do not
	// exist yet, in creation order.
	MissingTables(ctx context.Context) ([]string, error)

	// DropTables drops the persons and offices tables with their data.
	DropTables(ctx context.Context) error
}
