package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new reindent configuration file",
		Long: `Create a new .reindent.yml configuration file in the current directory
with sensible defaults. The file can be customized to change the margin
prefix, fence level, file extensions, ignore patterns, and backup policy.

Examples:
  reindent init                   Create minimal .reindent.yml
  reindent init --full            Create full config with every key listed
  reindent init --output ci.yml   Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every key listed")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .reindent.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".reindent.yml"
	}

	// Make path absolute
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	// Generate template
	content := config.Template()
	if flags.full {
		content, err = config.FullTemplate()
		if err != nil {
			return fmt.Errorf("generate template: %w", err)
		}
	}

	// Write file
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'reindent level' to measure files with the new settings")

	return nil
}
