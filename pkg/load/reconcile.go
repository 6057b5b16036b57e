package load

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gnames/persload/pkg/schema"
	"github.com/gnames/persload/pkg/validate"
)

// FieldValidation is the ledger field of rows that matched a stored person
// but could not be updated.
const FieldValidation = "validación"

// update applies a row to the stored person with the same surname.
// Only office resolution can skip the row before the diff is computed;
// name and age are compared only when usable.
func (e *Engine) update(
	ctx context.Context,
	row int,
	r validate.RawRow,
	stored schema.Person,
) (Outcome, error) {
	office, _, err := e.offices.resolve(ctx, row, r.Office)
	if err != nil {
		return e.skip(row, []validate.FieldError{
			{Field: "office", Value: r.Office, Message: err.Error()},
		})
	}

	staged := stored
	staged.Office = nil
	var diff Diff
	if r.Name != "" && staged.Name != r.Name {
		diff = append(diff, Change{Field: "name", Old: staged.Name, New: r.Name})
		staged.Name = r.Name
	}
	if age, err := validate.ParseAge(r.Age); err == nil && staged.Age != age {
		diff = append(diff, Change{
			Field: "age",
			Old:   strconv.Itoa(staged.Age),
			New:   strconv.Itoa(age),
		})
		staged.Age = age
	}
	if staged.OfficeID != office.ID {
		diff = append(diff, Change{
			Field: "office",
			Old:   strconv.FormatInt(staged.OfficeID, 10),
			New:   strconv.FormatInt(office.ID, 10),
		})
		staged.OfficeID = office.ID
	}

	if len(diff) == 0 {
		return Outcome{Kind: Unchanged}, nil
	}

	if errs := validate.Person(&staged); len(errs) > 0 {
		return e.skipUpdate(row, r, validate.Messages(errs))
	}

	if e.cfg.DryRun {
		e.dryPersons[staged.Surname] = staged
	} else if err = e.store.UpdatePerson(ctx, &staged); err != nil {
		return e.skipUpdate(row, r, err.Error())
	}

	e.summary.Updated++
	e.notify(fmt.Sprintf("Row %d: updated %s. Changes: %s", row, r.Surname, diff))
	return Outcome{Kind: Updated, Diff: diff}, nil
}

func (e *Engine) skipUpdate(row int, r validate.RawRow, msg string) (Outcome, error) {
	return e.skip(row, []validate.FieldError{
		{Field: FieldValidation, Value: encode(r), Message: msg},
	})
}

// create validates a row without a stored match and queues a new person.
func (e *Engine) create(
	ctx context.Context,
	row int,
	r validate.RawRow,
) (Outcome, error) {
	if errs := validate.Row(r, e.seen); len(errs) > 0 {
		return e.skip(row, errs)
	}

	office, _, err := e.offices.resolve(ctx, row, r.Office)
	if err != nil {
		return e.skip(row, []validate.FieldError{
			{Field: "office", Value: r.Office, Message: err.Error()},
		})
	}

	// Row already checked the age
	age, _ := validate.ParseAge(r.Age)
	p := &schema.Person{
		Name:     r.Name,
		Surname:  r.Surname,
		Age:      age,
		OfficeID: office.ID,
	}

	if errs := validate.Person(p); len(errs) > 0 {
		for i := range errs {
			errs[i].Value = r.Field(errs[i].Field)
			if errs[i].Value == "" {
				errs[i].Value = encode(r)
			}
		}
		return e.skip(row, errs)
	}

	e.seen.Add(r.Surname)
	if err = e.batch.add(ctx, Candidate{Row: row, Person: p}); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: Created}, nil
}
