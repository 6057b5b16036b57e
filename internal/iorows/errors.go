package iorows

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/persload/pkg/errcode"
)

// InputNotFoundError is returned when the input file cannot be opened.
func InputNotFoundError(path string, err error) error {
	msg := "Cannot open input file <em>%s</em>"

	return &gn.Error{
		Code: errcode.LoadInputNotFoundError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open input %s: %w", path, err),
	}
}

// EncodingError is returned for a character encoding that is not known.
func EncodingError(name string, err error) error {
	msg := `Unknown encoding <em>%s</em>

<em>How to fix:</em>
  Use a WHATWG or IANA name, for example utf-8, windows-1252, iso-8859-15`

	return &gn.Error{
		Code: errcode.LoadEncodingError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("unknown encoding %q: %w", name, err),
	}
}

// ReadError is returned when the input cannot be read as a table.
func ReadError(path string, err error) error {
	msg := "Cannot read rows from <em>%s</em>"

	return &gn.Error{
		Code: errcode.LoadReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// MissingColumnsError is returned when the header lacks required columns.
func MissingColumnsError(missing, header []string) error {
	msg := `Input file misses required columns: <em>%s</em>

Found columns: %s`

	cols := strings.Join(missing, ", ")
	return &gn.Error{
		Code: errcode.LoadMissingColumnsError,
		Msg:  msg,
		Vars: []any{cols, strings.Join(header, ", ")},
		Err:  fmt.Errorf("missing columns: %s", cols),
	}
}

// ErrorLogOpenError is returned when the error log cannot be created.
func ErrorLogOpenError(path string, err error) error {
	msg := "Cannot create error log <em>%s</em>"

	return &gn.Error{
		Code: errcode.LoadErrorLogOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create error log %s: %w", path, err),
	}
}
