package lifecycle

import (
	"context"

	"github.com/gnames/persload/pkg/ledger"
)

// Loader reads an input file and reconciles its rows with storage.
type Loader interface {
	// Load processes every row of the configured input file. Row problems
	// are recorded in the ledger and do not stop the run; fatal problems
	// (missing file, missing columns, storage failures) are returned as
	// errors.
	Load(ctx context.Context) (ledger.Summary, error)
}
