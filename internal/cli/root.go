// Package cli provides the Cobra command structure for reindent.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root reindent command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "reindent",
		Short: "Measure and rewrite the indentation of text files",
		Long: `reindent measures and rewrites the leading indentation of text files.

It treats a file as a block of lines sharing a common indentation level (the
smallest leading-space run on any non-blank line) and can report that level,
move the whole block to an absolute level, shift it by a delta, strip it,
trim margin prefixes from multi-line literals, and re-level fenced code block
bodies inside Markdown. Transforms preserve the relative offsets between
lines, each file's line-ending flavor, and never touch binary files. In-place
rewrites are atomic, race-checked, and backed up.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newLevelCommand())
	rootCmd.AddCommand(newSetCommand())
	rootCmd.AddCommand(newShiftCommand())
	rootCmd.AddCommand(newStripCommand())
	rootCmd.AddCommand(newMarginCommand())
	rootCmd.AddCommand(newFencesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
