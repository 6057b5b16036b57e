package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	WriteConfigError
	ReadConfigError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableLookupError
	DBMissingTablesError
	DBDropTableError
	DBUnknownDriverError
	DBSchemaError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Load errors
	LoadInputNotFoundError
	LoadEncodingError
	LoadReadError
	LoadMissingColumnsError
	LoadErrorLogOpenError
	LoadErrorLogWriteError
	LoadInvalidBatchSizeError
	LoadLookupError
	LoadCancelledError
)
