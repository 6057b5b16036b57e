package iorows

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/gnames/persload/pkg/ledger"
)

// ErrorLogHeader is the first line of an error log.
var ErrorLogHeader = []string{"row", "field", "value", "messages"}

// CSVSink writes ledger entries to a CSV file. Every entry is flushed
// right away, so the log is complete up to the last recorded error even if
// the run is interrupted.
type CSVSink struct {
	file *os.File
	w    *csv.Writer
}

// NewCSVSink creates the error log, truncating an existing file, and writes
// its header.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, ErrorLogOpenError(path, err)
	}

	res := &CSVSink{file: f, w: csv.NewWriter(f)}
	if err = res.write(ErrorLogHeader); err != nil {
		f.Close()
		return nil, ErrorLogOpenError(path, err)
	}
	return res, nil
}

// Write implements ledger.Sink.
func (s *CSVSink) Write(e ledger.Entry) error {
	return s.write([]string{strconv.Itoa(e.Row), e.Field, e.Value, e.Message})
}

func (s *CSVSink) write(rec []string) error {
	if err := s.w.Write(rec); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

// Close closes the file.
func (s *CSVSink) Close() error {
	s.w.Flush()
	return s.file.Close()
}
