package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/reindent/internal/configloader"
	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/reporter"
	"github.com/yaklabco/reindent/pkg/runner"
	"github.com/yaklabco/reindent/pkg/transform"
)

const levelLongDescription = `Report the common indentation level of files.

The common level of a text is the length of the shortest run of leading
spaces among its non-blank lines. Only spaces count as indentation; a
tab ends the run. Blank and whitespace-only lines never contribute.

With paths, every matching file is measured and reported in a table
(or as JSON with --output json). With piped stdin and no paths, the
level of the input is printed as a bare number.

Examples:
  # Measure every file under the current directory
  reindent level

  # Measure specific files as JSON
  reindent level --output json docs/notes.txt pkg/

  # Measure piped input
  cat snippet.txt | reindent level`

// levelFlags holds flag values for the level command.
type levelFlags struct {
	output string
	ignore []string
}

func newLevelCommand() *cobra.Command {
	var cfg config.Config

	flags := &levelFlags{}

	cmd := &cobra.Command{
		Use:   "level [paths...]",
		Short: "Report the common indentation level of files",
		Long:  levelLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLevel(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.output, "output", "text", "output format: text or json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

// runLevel measures files without rewriting anything.
func runLevel(cmd *cobra.Command, args []string, cfg *config.Config, flags *levelFlags) error {
	logger := logging.Default()

	if cmd.Flags().Changed("output") {
		if !configloader.IsValidFormat(flags.output) || flags.output == "diff" {
			return fmt.Errorf("%w: invalid output format %q (expected text or json)", ErrUsage, flags.output)
		}
		cfg.Format = flags.output
	}
	cfg.Ignore = flags.ignore

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	finalCfg, workDir, err := resolveConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	pipeline := transform.NewPipeline(transform.OpMeasure, transform.Options{})

	if len(args) == 0 && !stdinIsTerminal() {
		return runStdinLevel(ctx, cmd, pipeline, finalCfg)
	}

	logger.Debug("measuring files",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, finalCfg.Jobs,
	)

	result, err := runner.New(pipeline).Run(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   finalCfg.Extensions,
		ExcludeGlobs: finalCfg.Ignore,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	})
	if err != nil {
		return fmt.Errorf("measure files: %w", err)
	}

	format, err := reporter.ParseFormat(finalCfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	rep, err := reporter.NewLevelReporter(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report levels: %w", err)
	}

	if result.HasErrors() {
		return ErrProcessingFailed
	}

	return nil
}

// runStdinLevel prints the level of piped input as a bare number, so the
// output can feed shell arithmetic directly.
func runStdinLevel(ctx context.Context, cmd *cobra.Command, pipeline *transform.Pipeline, cfg *config.Config) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	result, err := pipeline.ProcessContent(ctx, "<stdin>", content, transform.PipelineOptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Level)

	return nil
}
