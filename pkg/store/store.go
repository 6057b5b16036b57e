package store

import (
	"context"

	"github.com/gnames/persload/pkg/schema"
)

// Store is the storage capability used by the loader. Implementations live
// in internal/iostore, one per database driver.
//
// Lookups return false and no error when nothing matches. Every write is
// atomic: BulkCreatePersons either stores all persons or none of them.
type Store interface {
	// FirstPersonBySurname returns the person with the smallest ID among
	// persons with the given surname.
	FirstPersonBySurname(ctx context.Context, surname string) (schema.Person, bool, error)

	// OfficeByName finds an office by exact name.
	OfficeByName(ctx context.Context, name string) (schema.Office, bool, error)

	// CreateOffice stores a new office and sets its ID.
	CreateOffice(ctx context.Context, o *schema.Office) error

	// CreatePerson stores a new person and sets its ID.
	CreatePerson(ctx context.Context, p *schema.Person) error

	// UpdatePerson overwrites name, surname, age and office of a stored
	// person.
	UpdatePerson(ctx context.Context, p *schema.Person) error

	// BulkCreatePersons stores persons in one transaction.
	BulkCreatePersons(ctx context.Context, ps []*schema.Person) error

	// Count returns the number of stored persons and offices.
	Count(ctx context.Context) (persons, offices int64, err error)

	// Close releases storage resources.
	Close() error
}
