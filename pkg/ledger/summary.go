package ledger

import (
	"fmt"
	"io"
)

// MaxShown is the number of entries printed when there is no sink.
const MaxShown = 20

// Summary contains the counts of a load run.
type Summary struct {
	Created int
	Updated int
	Skipped int
}

func (s Summary) String() string {
	return fmt.Sprintf("created=%d, updated=%d, skipped=%d",
		s.Created, s.Updated, s.Skipped)
}

// Report prints the summary line. When entries were not streamed to a sink,
// it also prints up to MaxShown of them.
func Report(w io.Writer, s Summary, l *Ledger) {
	fmt.Fprintln(w, s.String())
	if l == nil || l.Streaming() || l.Len() == 0 {
		return
	}

	fmt.Fprintf(w, "Detailed errors (first %d only):\n", MaxShown)
	for i, e := range l.Entries() {
		if i == MaxShown {
			break
		}
		fmt.Fprintf(w, "  %s\n", e)
	}
	if rest := l.Len() - MaxShown; rest > 0 {
		fmt.Fprintf(w,
			"  ... and %d more errors. Use --error-log to save them to a CSV.\n",
			rest)
	}
}
