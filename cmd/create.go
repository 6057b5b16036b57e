/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/persload/internal/iodb"
	"github.com/gnames/persload/internal/ioschema"
	"github.com/gnames/persload/internal/iostore"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the persons and offices tables.

For PostgreSQL this command:
  1. Connects to PostgreSQL using configuration settings
  2. Finds existing persons and offices tables and prompts before
     dropping them (other tables of the database are left alone)
  3. Creates the tables using GORM AutoMigrate

SQLite and MySQL tables are created when the database is opened, so for
these drivers the command only makes sure the tables exist.

Use --force to drop existing persons and offices without confirmation.

Examples:
  persload create
  persload create --force
  persload create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	if cfg.Database.Driver != "postgres" {
		return ensureTables(ctx)
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	existing, err := op.ExistingTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if len(existing) > 0 {
		if !force && !confirmDrop(existing) {
			gn.Info("Aborted. No changes made.")
			return nil
		}
		if err := op.DropTables(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Dropped <em>%s</em>", strings.Join(existing, ", "))
	}

	sm := ioschema.NewManager(op)

	gn.Info("Creating schema using GORM AutoMigrate...")
	if err := sm.Create(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("\nDatabase schema creation complete!")
	gn.Info("\nNext step:")
	gn.Info("  - Run 'persload load -f <file>' to import persons")

	return nil
}

func confirmDrop(tables []string) bool {
	gn.Warn("\nWarning: persload tables already exist: %s",
		strings.Join(tables, ", "))
	gn.Warn("Creating schema will delete all stored persons and offices.")
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}

// ensureTables opens a SQLite or MySQL store, which creates missing tables.
func ensureTables(ctx context.Context) error {
	st, err := iostore.Open(ctx, &cfg.Database)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	persons, offices, err := st.Count(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Tables of <em>%s</em> database are ready (%d persons, %d offices)",
		cfg.Database.Driver, persons, offices)
	return nil
}
