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
	"context"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/persload/internal/iodb"
	"github.com/gnames/persload/internal/ioschema"
	"github.com/gnames/persload/pkg/schema"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the PostgreSQL schema of persons and offices up to date",
		Long: `Migrate adds missing persons and offices tables, columns and
indexes with GORM AutoMigrate. Stored persons and offices are kept, the
command is non-destructive and can run any number of times.

A database without any persload tables is left alone, use 'persload create'
for it. SQLite and MySQL tables are updated when 'persload load' opens them.

Examples:
  persload migrate
  PERSLOAD_DATABASE_DATABASE=staff persload migrate`,
		RunE: runMigrate,
	}
}

func runMigrate(_ *cobra.Command, _ []string) error {
	if cfg.Database.Driver != "postgres" {
		gn.Warn("Migrate works with PostgreSQL only, "+
			"<em>%s</em> tables are created by 'persload load'",
			cfg.Database.Driver)
		return nil
	}

	ctx := context.Background()
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	missing, err := op.MissingTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if len(missing) == len(schema.TableNames()) {
		gn.Warn("Database <em>%s</em> has no persload tables. "+
			"Run 'persload create' first.", cfg.Database.Database)
		return nil
	}

	if err = ioschema.NewManager(op).Migrate(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if len(missing) > 0 {
		gn.Info("Added <em>%s</em>", strings.Join(missing, ", "))
	}
	gn.Info("Schema of <em>%s</em> is up to date.", cfg.Database.Database)
	return nil
}
