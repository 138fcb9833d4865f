// Package main is the entry point for the reindent CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/reindent/internal/cli"
	"github.com/yaklabco/reindent/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrChangesNeeded is just the --check exit signal, not a failure
		// worth logging.
		if errors.Is(err, cli.ErrChangesNeeded) {
			return cli.ExitChangesNeeded
		}

		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
