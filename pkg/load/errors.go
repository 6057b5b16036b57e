package load

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/persload/pkg/errcode"
)

// LookupError is returned when storage cannot be searched for a surname.
// This error stops the run.
func LookupError(surname string, err error) error {
	msg := `Cannot look up persons with surname <em>%s</em>

<em>Possible causes:</em>
  - Database connection was lost
  - Schema was not created

<em>How to fix:</em>
  1. Check that the database is running
  2. Run 'persload create' or 'persload migrate'`

	return &gn.Error{
		Code: errcode.LoadLookupError,
		Msg:  msg,
		Vars: []any{surname},
		Err:  fmt.Errorf("failed to look up surname %q: %w", surname, err),
	}
}

// ErrorLogWriteError is returned when a ledger entry cannot be saved to the
// error log. This error stops the run.
func ErrorLogWriteError(err error) error {
	msg := `Cannot write to the error log

<em>Possible causes:</em>
  - Disk is full
  - File was removed or became read-only

<em>How to fix:</em>
  1. Free disk space or choose another --error-log path
  2. Run the load again, it is safe to repeat`

	return &gn.Error{
		Code: errcode.LoadErrorLogWriteError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to write error log: %w", err),
	}
}

// InvalidBatchSizeError is returned for a batch size that is not positive.
func InvalidBatchSizeError(size int) error {
	msg := "Batch size has to be a positive number, got <em>%d</em>"

	return &gn.Error{
		Code: errcode.LoadInvalidBatchSizeError,
		Msg:  msg,
		Vars: []any{size},
		Err:  fmt.Errorf("invalid batch size %d", size),
	}
}
