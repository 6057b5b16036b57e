// Package persload loads person records from CSV or XLSX files into a
// relational database, reconciling them with records that already exist.
package persload

var (
	// Version of persload, set during the build.
	Version = "v0.1.0"

	// Build timestamp, set during the build.
	Build = "n/a"
)
