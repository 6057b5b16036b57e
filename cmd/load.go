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
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/persload/internal/ioload"
	"github.com/gnames/persload/internal/iorows"
	"github.com/gnames/persload/internal/iostore"
	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/load"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load persons from a CSV or XLSX file",
		Long: `Load reconciles rows of an input file with the database.

Required columns: name, surname, age, office. Other columns are ignored.
Files with the .xlsx extension are read from their first sheet, all other
files are parsed as CSV.

For every row:
  - a stored person with the same surname is updated
  - a new person is created otherwise, a missing office is created too
  - a row that fails validation is skipped and reported

Errors are printed at the end (first 20 only) or, with --error-log, saved
to a CSV file as soon as they are found.

Examples:
  persload load -f people.csv
  persload load -f people.csv --dry-run
  persload load -f people.csv -e windows-1252 -l errors.csv
  persload load -f people.xlsx -b 1000`,
		RunE: runLoad,
	}

	loadCmd.Flags().StringP("file", "f", "",
		"input CSV or XLSX file")
	loadCmd.Flags().BoolP("dry-run", "n", false,
		"validate and reconcile without writing to the database")
	loadCmd.Flags().IntP("batch-size", "b", load.DefaultBatchSize,
		"number of new persons per bulk insert")
	loadCmd.Flags().StringP("encoding", "e", "utf-8",
		"character encoding of a CSV file")
	loadCmd.Flags().StringP("error-log", "l", "",
		"save row errors to this CSV file")
	loadCmd.Flags().Bool("no-progress", false,
		"do not show the progress bar")
	_ = loadCmd.MarkFlagRequired("file")

	return loadCmd
}

func runLoad(cmd *cobra.Command, _ []string) error {
	if err := loadFlags(cmd); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// a missing file is reported even when the database is down
	if _, err := os.Stat(cfg.Load.FilePath); err != nil {
		err = iorows.InputNotFoundError(cfg.Load.FilePath, err)
		gn.PrintErrorMessage(err)
		return err
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	st, err := iostore.Open(ctx, &cfg.Database)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	if cfg.Load.DryRun {
		gn.Info("Dry run, the database will not be changed")
	}

	l := ioload.New(cfg, st, ioload.OptOutput(cmd.OutOrStdout()))
	if _, err = l.Load(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

// loadFlags applies flags of the load command to the config.
func loadFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var opts []config.Option

	file, _ := flags.GetString("file")
	opts = append(opts, config.OptLoadFilePath(file))

	dryRun, _ := flags.GetBool("dry-run")
	opts = append(opts, config.OptLoadDryRun(dryRun))

	if flags.Changed("batch-size") {
		size, _ := flags.GetInt("batch-size")
		if size <= 0 {
			return load.InvalidBatchSizeError(size)
		}
		opts = append(opts, config.OptLoadBatchSize(size))
	}

	if flags.Changed("encoding") {
		enc, _ := flags.GetString("encoding")
		opts = append(opts, config.OptLoadEncoding(enc))
	}

	if errLog, _ := flags.GetString("error-log"); errLog != "" {
		opts = append(opts, config.OptLoadErrorLogPath(errLog))
	}

	noProgress, _ := flags.GetBool("no-progress")
	opts = append(opts, config.OptLoadWithProgress(!noProgress))

	cfg.Update(opts)
	return nil
}
