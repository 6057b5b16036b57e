package load

import (
	"fmt"
	"strings"

	"github.com/gnames/persload/pkg/schema"
	"github.com/gnames/persload/pkg/validate"
)

// Kind is the decision made for one input row.
type Kind int

const (
	// Unchanged rows match a stored person without any difference.
	// They are not counted.
	Unchanged Kind = iota

	// Created rows are queued for insertion.
	Created

	// Updated rows changed a stored person.
	Updated

	// Skipped rows produced at least one ledger entry.
	Skipped
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Skipped:
		return "skipped"
	default:
		return "unchanged"
	}
}

// Change is a difference between a stored person and an input row.
type Change struct {
	Field string
	Old   string
	New   string
}

// Diff lists changes applied to a stored person.
type Diff []Change

func (d Diff) String() string {
	res := make([]string, len(d))
	for i, v := range d {
		res[i] = fmt.Sprintf("%s: %s -> %s", v.Field, v.Old, v.New)
	}
	return strings.Join(res, ", ")
}

// Outcome carries the result of processing one row.
type Outcome struct {
	Kind Kind

	// Diff is set for Updated rows.
	Diff Diff

	// Errors is set for Skipped rows.
	Errors []validate.FieldError
}

// Candidate is a validated person waiting for a batch insert.
type Candidate struct {
	// Row is the input line the person came from.
	Row    int
	Person *schema.Person
}
