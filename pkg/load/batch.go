package load

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gnfmt"
	"github.com/gnames/persload/pkg/ledger"
	"github.com/gnames/persload/pkg/schema"
	"github.com/gnames/persload/pkg/store"
	"github.com/gnames/persload/pkg/validate"
)

const (
	// TagBulk marks failures of individual inserts after a failed bulk
	// insert of a full batch.
	TagBulk = "bulk->individual"

	// TagBulkFinal marks the same failures for the last partial batch.
	TagBulkFinal = "bulk-final->individual"
)

// batchWriter accumulates candidates and inserts them in bulk. If a bulk
// insert fails, every candidate of the batch is inserted on its own.
type batchWriter struct {
	size    int
	dryRun  bool
	store   store.Store
	notify  Notify
	record  func(ledger.Entry) error
	forget  func(surname string)
	summary *ledger.Summary
	buf     []Candidate
}

func (b *batchWriter) add(ctx context.Context, c Candidate) error {
	b.buf = append(b.buf, c)
	if len(b.buf) >= b.size {
		return b.flush(ctx, TagBulk)
	}
	return nil
}

// flush writes buffered candidates. The buffer is empty afterwards no matter
// how individual inserts ended.
func (b *batchWriter) flush(ctx context.Context, tag string) error {
	if len(b.buf) == 0 {
		return nil
	}
	buf := b.buf
	b.buf = nil

	if b.dryRun {
		b.summary.Created += len(buf)
		return nil
	}

	persons := make([]*schema.Person, len(buf))
	for i := range buf {
		persons[i] = buf[i].Person
	}

	err := b.store.BulkCreatePersons(ctx, persons)
	if err == nil {
		b.summary.Created += len(buf)
		b.notify(fmt.Sprintf("Created %d persons (batch)", len(buf)))
		return nil
	}

	slog.Warn("Bulk insert failed, inserting persons one by one",
		"persons", len(buf), "tag", tag, "error", err)

	for _, c := range buf {
		if err = b.insertOne(ctx, c.Person); err != nil {
			b.summary.Skipped++
			b.forget(c.Person.Surname)
			e := ledger.Entry{
				Row:     c.Row,
				Field:   tag,
				Value:   encode(c.Person),
				Message: err.Error(),
			}
			if err = b.record(e); err != nil {
				return err
			}
			continue
		}
		b.summary.Created++
	}
	return nil
}

func (b *batchWriter) insertOne(ctx context.Context, p *schema.Person) error {
	if errs := validate.Person(p); len(errs) > 0 {
		return fmt.Errorf("%s", validate.Messages(errs))
	}
	// failed bulk insert leaves no stored rows
	p.ID = 0
	return b.store.CreatePerson(ctx, p)
}

func encode(v any) string {
	enc := gnfmt.GNjson{}
	res, err := enc.Encode(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(res)
}
