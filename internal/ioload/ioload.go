// Package ioload runs the load command: it reads an input file row by row,
// passes rows to the reconciliation engine and reports the results.
// This is an impure I/O package.
package ioload

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/persload/internal/iorows"
	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/ledger"
	"github.com/gnames/persload/pkg/lifecycle"
	"github.com/gnames/persload/pkg/load"
	"github.com/gnames/persload/pkg/store"
	"github.com/google/uuid"
)

// FieldRow marks entries of records that could not be parsed.
const FieldRow = "row"

type loader struct {
	cfg   *config.Config
	store store.Store
	out   io.Writer
	log   *slog.Logger
}

// Option modifies the loader.
type Option func(*loader)

// OptOutput sets where notices and the final report are printed.
// Default is STDOUT.
func OptOutput(w io.Writer) Option {
	return func(l *loader) {
		l.out = w
	}
}

// New creates a Loader that reconciles cfg.Load.FilePath with st.
func New(
	cfg *config.Config,
	st store.Store,
	opts ...Option,
) lifecycle.Loader {
	res := &loader{cfg: cfg, store: st, out: os.Stdout}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Load implements lifecycle.Loader.
func (l *loader) Load(ctx context.Context) (ledger.Summary, error) {
	var res ledger.Summary
	lc := l.cfg.Load
	l.log = slog.With("run_id", uuid.NewString())
	start := time.Now()

	l.log.Info("Starting load",
		"file", lc.FilePath,
		"encoding", lc.Encoding,
		"batch_size", lc.BatchSize,
		"dry_run", lc.DryRun,
	)

	if _, err := os.Stat(lc.FilePath); err != nil {
		return res, iorows.InputNotFoundError(lc.FilePath, err)
	}

	src, err := iorows.Open(lc)
	if err != nil {
		return res, err
	}
	defer src.Close()

	cols, err := iorows.NewColumns(src.Header(), config.RequiredColumns)
	if err != nil {
		return res, err
	}

	var sink ledger.Sink
	if lc.ErrorLogPath != "" {
		csvSink, err := iorows.NewCSVSink(lc.ErrorLogPath)
		if err != nil {
			return res, err
		}
		defer csvSink.Close()
		sink = csvSink
	}

	lg := ledger.New(sink)
	eng := load.New(lc, l.store, lg, l.notify)

	row, err := l.process(ctx, src, cols, eng)
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		res = eng.Summary()
		l.log.Warn("Load interrupted", "row", row,
			"pending", eng.Pending(), "summary", res.String())
		ledger.Report(l.out, res, lg)
		return res, CancelledError(row, err)
	}
	if err != nil {
		return eng.Summary(), err
	}

	if err = eng.Close(ctx); err != nil {
		return eng.Summary(), err
	}

	res = eng.Summary()
	l.log.Info("Load finished",
		"rows", humanize.Comma(int64(row-1)),
		"created", res.Created,
		"updated", res.Updated,
		"skipped", res.Skipped,
		"errors", lg.Len(),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)

	if lc.DryRun {
		fmt.Fprintln(l.out, "Dry run: nothing was saved to the database.")
	}
	ledger.Report(l.out, res, lg)
	return res, nil
}

// process feeds records to the engine and returns the number of the last
// read row. A cancelled context is checked before every record.
func (l *loader) process(
	ctx context.Context,
	src iorows.Source,
	cols iorows.Columns,
	eng *load.Engine,
) (int, error) {
	// the header is row 1
	row := 1
	path := l.cfg.Load.FilePath
	for {
		if err := ctx.Err(); err != nil {
			return row, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return row, nil
		}
		row++

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			err = eng.Reject(row, FieldRow, "", parseErr.Err.Error())
			if err != nil {
				return row, err
			}
			continue
		}
		if err != nil {
			return row, iorows.ReadError(path, err)
		}

		if iorows.IsEmpty(rec) {
			continue
		}

		if _, err = eng.Process(ctx, row, cols.RawRow(rec)); err != nil {
			return row, err
		}
	}
}

func (l *loader) notify(msg string) {
	l.log.Info(msg)
	fmt.Fprintln(l.out, msg)
}
