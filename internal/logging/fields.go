// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Operation fields.
	FieldOp     = "op"
	FieldLevel  = "level"
	FieldDelta  = "delta"
	FieldPrefix = "prefix"
	FieldWrite  = "write"
	FieldCheck  = "check"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
