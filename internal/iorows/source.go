// Package iorows reads input rows from CSV and XLSX files and writes row
// errors to a CSV log. This is an impure I/O package.
package iorows

import (
	"path/filepath"
	"strings"

	"github.com/gnames/persload/pkg/config"
	"github.com/gnames/persload/pkg/validate"
)

// Source iterates over the records of an input table.
type Source interface {
	// Header returns the trimmed column names of the first row.
	Header() []string

	// Next returns the following record. It returns io.EOF after the last
	// one. A *csv.ParseError concerns only the current record, reading can
	// continue after it.
	Next() ([]string, error)

	// Close releases the file.
	Close() error
}

// Open selects a reader by the file extension: .xlsx files are read with
// excelize, everything else is parsed as CSV in the given encoding.
func Open(cfg config.LoadConfig) (Source, error) {
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".xlsx") {
		return OpenXLSX(cfg.FilePath)
	}
	return OpenCSV(cfg.FilePath, cfg.Encoding, cfg.WithProgress)
}

// Columns maps required column names to their positions in a record.
type Columns map[string]int

// NewColumns finds required columns in the header. Names are matched
// exactly, extra columns are ignored.
func NewColumns(header, required []string) (Columns, error) {
	res := make(Columns, len(required))
	for i, v := range header {
		if _, ok := res[v]; ok {
			continue
		}
		res[v] = i
	}

	var missing []string
	for _, v := range required {
		if _, ok := res[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return nil, MissingColumnsError(missing, header)
	}
	return res, nil
}

// RawRow picks required fields from a record. Short records get empty
// values for the absent fields.
func (c Columns) RawRow(rec []string) validate.RawRow {
	get := func(name string) string {
		i := c[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	return validate.RawRow{
		Name:    get("name"),
		Surname: get("surname"),
		Age:     get("age"),
		Office:  get("office"),
	}
}

// IsEmpty is true when every field of a record is blank.
func IsEmpty(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimHeader(header []string) []string {
	res := make([]string, len(header))
	for i, v := range header {
		res[i] = strings.TrimSpace(v)
	}
	return res
}
