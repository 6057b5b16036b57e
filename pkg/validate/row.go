// Package validate checks input rows and entities before they reach storage.
// It never touches storage.
package validate

import (
	"strconv"
	"strings"
)

// RawRow holds the untyped values of one input row.
type RawRow struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Age     string `json:"age"`
	Office  string `json:"office"`
}

// FieldError describes a problem with one field of a row or entity.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

// Trim returns a copy of the row with whitespace around values removed.
func (r RawRow) Trim() RawRow {
	return RawRow{
		Name:    strings.TrimSpace(r.Name),
		Surname: strings.TrimSpace(r.Surname),
		Age:     strings.TrimSpace(r.Age),
		Office:  strings.TrimSpace(r.Office),
	}
}

// Field returns the raw value of a column by its name.
func (r RawRow) Field(name string) string {
	switch name {
	case "name":
		return r.Name
	case "surname":
		return r.Surname
	case "age":
		return r.Age
	case "office":
		return r.Office
	default:
		return ""
	}
}

// Seen keeps surnames accepted for creation during one run.
type Seen map[string]struct{}

// Has returns true if the surname was accepted before.
func (s Seen) Has(surname string) bool {
	_, ok := s[surname]
	return ok
}

// Add marks the surname as accepted.
func (s Seen) Add(surname string) {
	s[surname] = struct{}{}
}

// Delete forgets a surname whose person could not be stored.
func (s Seen) Delete(surname string) {
	delete(s, surname)
}

// ParseAge converts an age value to an integer.
func ParseAge(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// Row checks a row that does not match any stored person. All checks are
// evaluated, so a row can produce several errors. The row is expected to be
// trimmed already.
func Row(r RawRow, seen Seen) []FieldError {
	var res []FieldError
	add := func(field, value, msg string) {
		res = append(res, FieldError{Field: field, Value: value, Message: msg})
	}

	if r.Name == "" {
		add("name", r.Name, "empty name")
	}

	switch {
	case r.Surname == "":
		add("surname", r.Surname, "empty surname")
	case seen.Has(r.Surname):
		add("surname", r.Surname, "duplicate surname in file")
	}

	if r.Age == "" {
		add("age", r.Age, "empty age")
	} else if age, err := ParseAge(r.Age); err != nil {
		add("age", r.Age, "not a valid integer")
	} else if age < 0 {
		add("age", r.Age, "negative age")
	}

	if r.Office == "" {
		add("office", r.Office, "empty office")
	}

	return res
}
