// Package load contains the reconciliation engine of persload.
//
// For every input row the Engine decides if a person has to be created,
// updated or skipped. It finds or creates the office of the person,
// validates fields, queues new persons for bulk inserts and records every
// problem in a ledger. Rows are processed one at a time in file order.
package load

import (
	"context"

	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/ledger"
	"github.com/gnames/persload/pkg/schema"
	"github.com/gnames/persload/pkg/store"
	"github.com/gnames/persload/pkg/validate"
)

// DefaultBatchSize is used when the configured batch size is not positive.
const DefaultBatchSize = 500

// Notify receives informational messages, such as created offices and
// inserted batches.
type Notify func(msg string)

// Engine reconciles input rows with storage. It is not safe for concurrent
// use.
type Engine struct {
	cfg     config.LoadConfig
	store   store.Store
	ledger  *ledger.Ledger
	notify  Notify
	seen    validate.Seen
	offices *officeResolver
	batch   *batchWriter
	summary ledger.Summary

	// dryPersons keeps persons as a dry run would have updated them.
	dryPersons map[string]schema.Person
}

// New creates an Engine for one run. The notify function is optional.
func New(
	cfg config.LoadConfig,
	st store.Store,
	lg *ledger.Ledger,
	notify Notify,
) *Engine {
	if notify == nil {
		notify = func(string) {}
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	res := &Engine{
		cfg:        cfg,
		store:      st,
		ledger:     lg,
		notify:     notify,
		seen:       validate.Seen{},
		dryPersons: make(map[string]schema.Person),
	}
	res.offices = newOfficeResolver(st, cfg.DryRun, notify)
	res.batch = &batchWriter{
		size:    cfg.BatchSize,
		dryRun:  cfg.DryRun,
		store:   st,
		notify:  notify,
		record:  res.record,
		forget:  res.seen.Delete,
		summary: &res.summary,
	}
	return res
}

// Process handles one input row. Row problems are recorded in the ledger
// and reported in the Outcome. A returned error means the run cannot
// continue.
func (e *Engine) Process(
	ctx context.Context,
	row int,
	raw validate.RawRow,
) (Outcome, error) {
	r := raw.Trim()

	// a surname accepted for creation earlier in this run is a duplicate
	// even when its batch is already stored
	if r.Surname == "" || e.seen.Has(r.Surname) {
		return e.create(ctx, row, r)
	}

	if p, ok := e.dryPersons[r.Surname]; ok {
		return e.update(ctx, row, r, p)
	}

	p, found, err := e.store.FirstPersonBySurname(ctx, r.Surname)
	if err != nil {
		return Outcome{}, LookupError(r.Surname, err)
	}
	if found {
		return e.update(ctx, row, r, p)
	}
	return e.create(ctx, row, r)
}

// Reject records a row that could not be read at all.
func (e *Engine) Reject(row int, field, value, msg string) error {
	e.summary.Skipped++
	return e.record(ledger.Entry{
		Row: row, Field: field, Value: value, Message: msg,
	})
}

// Close inserts persons left in the last partial batch.
func (e *Engine) Close(ctx context.Context) error {
	return e.batch.flush(ctx, TagBulkFinal)
}

// Summary returns the counts collected so far.
func (e *Engine) Summary() ledger.Summary {
	return e.summary
}

// Pending returns the number of persons waiting for insertion.
func (e *Engine) Pending() int {
	return len(e.batch.buf)
}

func (e *Engine) record(entry ledger.Entry) error {
	if err := e.ledger.Add(entry); err != nil {
		return ErrorLogWriteError(err)
	}
	return nil
}

func (e *Engine) skip(row int, errs []validate.FieldError) (Outcome, error) {
	e.summary.Skipped++
	for _, v := range errs {
		entry := ledger.Entry{
			Row: row, Field: v.Field, Value: v.Value, Message: v.Message,
		}
		if err := e.record(entry); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{Kind: Skipped, Errors: errs}, nil
}
