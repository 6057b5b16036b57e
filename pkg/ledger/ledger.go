// Package ledger collects row errors of a load run and reports the results.
package ledger

import "fmt"

// Entry is one problem found in an input row.
type Entry struct {
	// Row is the 1-based line of the input file, the header is row 1.
	Row int

	// Field is the column name or a tag describing the failed stage.
	Field string

	// Value is the raw value that caused the problem.
	Value string

	// Message describes the problem.
	Message string
}

func (e Entry) String() string {
	return fmt.Sprintf("Row %d: field=%s, value=%s, message=%s",
		e.Row, e.Field, e.Value, e.Message)
}

// Sink receives entries as soon as they are recorded.
type Sink interface {
	Write(Entry) error
}

// Ledger keeps entries in the order they were found.
type Ledger struct {
	entries []Entry
	sink    Sink
}

// New creates a Ledger. The sink is optional.
func New(sink Sink) *Ledger {
	return &Ledger{sink: sink}
}

// Add records an entry and passes it to the sink, if there is one.
// A sink failure is returned to the caller.
func (l *Ledger) Add(e Entry) error {
	l.entries = append(l.entries, e)
	if l.sink == nil {
		return nil
	}
	return l.sink.Write(e)
}

// Entries returns recorded entries.
func (l *Ledger) Entries() []Entry {
	return l.entries
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Streaming is true when entries go to a sink.
func (l *Ledger) Streaming() bool {
	return l.sink != nil
}
