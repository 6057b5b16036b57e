package load

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnames/persload/pkg/schema"
	"github.com/gnames/persload/pkg/store"
	"github.com/gnames/persload/pkg/validate"
)

// officeResolver finds offices by name and creates the missing ones.
// In dry-run mode new offices are kept in memory with negative IDs, so
// repeated names still resolve to one office.
type officeResolver struct {
	store     store.Store
	dryRun    bool
	notify    Notify
	transient map[string]schema.Office
	lastID    int64
}

func newOfficeResolver(st store.Store, dryRun bool, notify Notify) *officeResolver {
	return &officeResolver{
		store:     st,
		dryRun:    dryRun,
		notify:    notify,
		transient: make(map[string]schema.Office),
	}
}

// resolve returns an office with the given name, creating it if necessary.
// Lookup happens right before creation, so a name is created only once.
func (r *officeResolver) resolve(
	ctx context.Context,
	row int,
	name string,
) (schema.Office, bool, error) {
	var res schema.Office
	if name == "" {
		return res, false, errors.New("empty office")
	}

	if o, ok := r.transient[name]; ok {
		return o, false, nil
	}

	res, found, err := r.store.OfficeByName(ctx, name)
	if err != nil {
		return res, false, fmt.Errorf("cannot look up office: %w", err)
	}
	if found {
		return res, false, nil
	}

	res = schema.NewOffice(name)
	if errs := validate.Office(&res); len(errs) > 0 {
		return schema.Office{}, false, errors.New(validate.Messages(errs))
	}

	if r.dryRun {
		r.lastID--
		res.ID = r.lastID
		r.transient[name] = res
	} else if err = r.store.CreateOffice(ctx, &res); err != nil {
		return schema.Office{}, false, fmt.Errorf("cannot create office: %w", err)
	}

	r.notify(fmt.Sprintf("Row %d: created new office %q", row, name))
	return res, true, nil
}
