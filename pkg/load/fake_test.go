package load_test

import (
	"context"
	"errors"
	"slices"

	"github.com/gnames/persload/pkg/schema"
)

// fakeStore keeps persons and offices in memory and counts calls.
type fakeStore struct {
	persons []schema.Person
	offices []schema.Office
	lastID  int64

	failBulk      bool
	failCreate    map[string]bool
	failUpdate    bool
	failLookup    bool
	failOffice    bool
	bulkCalls     int
	createCalls   []string
	officeCreates int
	updates       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{failCreate: make(map[string]bool)}
}

func (f *fakeStore) nextID() int64 {
	f.lastID++
	return f.lastID
}

func (f *fakeStore) addPerson(p schema.Person) schema.Person {
	p.ID = f.nextID()
	f.persons = append(f.persons, p)
	return p
}

func (f *fakeStore) addOffice(name string) schema.Office {
	o := schema.NewOffice(name)
	o.ID = f.nextID()
	f.offices = append(f.offices, o)
	return o
}

func (f *fakeStore) FirstPersonBySurname(
	_ context.Context,
	surname string,
) (schema.Person, bool, error) {
	if f.failLookup {
		return schema.Person{}, false, errors.New("connection lost")
	}
	for _, v := range f.persons {
		if v.Surname == surname {
			return v, true, nil
		}
	}
	return schema.Person{}, false, nil
}

func (f *fakeStore) OfficeByName(
	_ context.Context,
	name string,
) (schema.Office, bool, error) {
	for _, v := range f.offices {
		if v.Name == name {
			return v, true, nil
		}
	}
	return schema.Office{}, false, nil
}

func (f *fakeStore) CreateOffice(_ context.Context, o *schema.Office) error {
	if f.failOffice {
		return errors.New("offices table is locked")
	}
	f.officeCreates++
	o.ID = f.nextID()
	f.offices = append(f.offices, *o)
	return nil
}

func (f *fakeStore) CreatePerson(_ context.Context, p *schema.Person) error {
	f.createCalls = append(f.createCalls, p.Surname)
	if f.failCreate[p.Surname] {
		return errors.New("constraint violation")
	}
	*p = f.addPerson(*p)
	return nil
}

func (f *fakeStore) UpdatePerson(_ context.Context, p *schema.Person) error {
	if f.failUpdate {
		return errors.New("row is locked")
	}
	f.updates++
	idx := slices.IndexFunc(f.persons, func(v schema.Person) bool {
		return v.ID == p.ID
	})
	if idx < 0 {
		return errors.New("not found")
	}
	f.persons[idx] = *p
	return nil
}

func (f *fakeStore) BulkCreatePersons(
	_ context.Context,
	ps []*schema.Person,
) error {
	f.bulkCalls++
	if f.failBulk {
		return errors.New("bulk insert failed")
	}
	for _, p := range ps {
		*p = f.addPerson(*p)
	}
	return nil
}

func (f *fakeStore) Count(context.Context) (int64, int64, error) {
	return int64(len(f.persons)), int64(len(f.offices)), nil
}

func (f *fakeStore) Close() error {
	return nil
}
