package cli

import (
	"errors"
	"os"

	"github.com/yaklabco/reindent/pkg/runner"
	"github.com/yaklabco/reindent/pkg/transform"
)

// Exit codes for reindent.
const (
	// ExitSuccess indicates successful execution with no pending changes.
	ExitSuccess = 0

	// ExitChangesNeeded indicates --check found files that would change.
	ExitChangesNeeded = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and check mode.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitIOError
	}

	if check && result.HasChanges() {
		return ExitChangesNeeded
	}

	return ExitSuccess
}

// ExitCodeFromError maps a command error to the closest exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesNeeded):
		return ExitChangesNeeded
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrProcessingFailed),
		errors.Is(err, transform.ErrFileNotFound),
		errors.Is(err, transform.ErrPermissionDenied),
		errors.Is(err, transform.ErrWriteFailure),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
