package ioload

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/persload/pkg/errcode"
)

// CancelledError is returned when a load is interrupted between rows.
func CancelledError(row int, err error) error {
	msg := `Load was interrupted after row <em>%d</em>

Committed batches and updates are kept, the rest of the file was not
processed. It is safe to run the load again.`

	return &gn.Error{
		Code: errcode.LoadCancelledError,
		Msg:  msg,
		Vars: []any{row},
		Err:  fmt.Errorf("load cancelled after row %d: %w", row, err),
	}
}
