// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnames/persload/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "persload_test"
)

// GetTestConfig returns a configuration suitable for PostgreSQL integration
// tests. It starts from defaults, applies PERSLOAD_DATABASE_* environment
// variables and overrides the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    iotesting.RequirePostgres(t)
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	v := viper.New()
	v.SetEnvPrefix("PERSLOAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := config.New()
	var opts []config.Option
	if s := v.GetString("database.host"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if i := v.GetInt("database.port"); i > 0 {
		opts = append(opts, config.OptDatabasePort(i))
	}
	if s := v.GetString("database.user"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := v.GetString("database.password"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// RequirePostgres skips the test in short mode or when the test database
// cannot be reached.
func RequirePostgres(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := GetTestDatabaseConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	connCfg, err := pgx.ParseConfig("")
	if err != nil {
		t.Skipf("Skipping, cannot configure PostgreSQL: %v", err)
	}
	connCfg.Host = cfg.Host
	connCfg.Port = uint16(cfg.Port)
	connCfg.User = cfg.User
	connCfg.Password = cfg.Password
	connCfg.Database = cfg.Database

	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		t.Skipf("Skipping, PostgreSQL is not available: %v", err)
	}
	_ = conn.Close(ctx)
}

// SQLiteConfig returns a configuration that keeps the database in a
// temporary directory of the test.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(filepath.Join(t.TempDir(), "persload.sqlite")),
		config.OptLoadWithProgress(false),
	})
	return cfg
}

// WriteFile writes test input to a temporary directory and returns its
// path.
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, content, 0644)
	if err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
