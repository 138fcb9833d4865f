package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/reindent/internal/configloader"
	"github.com/yaklabco/reindent/internal/logging"
	"github.com/yaklabco/reindent/pkg/config"
	"github.com/yaklabco/reindent/pkg/reporter"
	"github.com/yaklabco/reindent/pkg/runner"
	"github.com/yaklabco/reindent/pkg/transform"
)

// Sentinel errors used to pick exit codes without logging noise.
var (
	// ErrChangesNeeded is returned when --check finds files that would change.
	ErrChangesNeeded = errors.New("changes needed")

	// ErrProcessingFailed is returned when some files could not be processed.
	ErrProcessingFailed = errors.New("processing failed")

	// ErrUsage marks command-line usage errors.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")
)

// applyFlags holds the string-typed flags shared by the transform commands.
// Boolean and integer flags bind directly onto config.Config.
type applyFlags struct {
	output string
	ignore []string
}

// addApplyFlags registers the flags every transform command shares.
func addApplyFlags(cmd *cobra.Command, cfg *config.Config, flags *applyFlags) {
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "report pending changes via exit code, write nothing")
	cmd.Flags().BoolVar(&cfg.List, "list", false, "print only the paths of files that would change")
	cmd.Flags().BoolVar(&cfg.Diff, "diff", false, "print unified diffs for files that would change")
	cmd.Flags().StringVar(&flags.output, "output", "text", "output format: text or json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
}

// runApply executes one transform operation across the given paths.
// makeOpts builds the operation options from the fully merged configuration,
// so flags can fall back to config file and environment values.
func runApply(cmd *cobra.Command, args []string, op transform.Op, makeOpts func(*config.Config) transform.Options, cfg *config.Config, flags *applyFlags) error {
	logger := logging.Default()

	// Map string flags to typed config values.
	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("output") {
		if !configloader.IsValidFormat(flags.output) {
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

	// Check mode never writes, even when --write is also given.
	if finalCfg.Check {
		finalCfg.Write = false
	}

	pipeline := transform.NewPipeline(op, makeOpts(finalCfg))

	// With no path arguments and piped input, transform stdin to stdout.
	if len(args) == 0 && !stdinIsTerminal() {
		return runStdinFilter(ctx, cmd, pipeline, finalCfg)
	}

	logger.Debug("starting run",
		logging.FieldOp, op.String(),
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldWrite, finalCfg.Write,
		logging.FieldCheck, finalCfg.Check,
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
		return errors.Join(errors.New("run failed"), err)
	}

	rep, err := newReporter(cmd, finalCfg, workDir)
	if err != nil {
		return err
	}
	if err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, finalCfg.Check) {
	case ExitIOError:
		return ErrProcessingFailed
	case ExitChangesNeeded:
		return ErrChangesNeeded
	}

	return nil
}

// resolveConfig merges CLI flag values with discovered configuration files
// and environment overrides.
func resolveConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.Default()

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// newReporter builds the reporter matching the resolved run configuration.
func newReporter(cmd *cobra.Command, cfg *config.Config, workDir string) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if cfg.Diff {
		format = reporter.FormatDiff
	}

	return reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		ListOnly:    cfg.List,
		WorkingDir:  workDir,
	})
}

// colorMode reads the persistent --color flag, defaulting to auto.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

// stdinIsTerminal reports whether stdin is attached to a terminal. Piped
// input switches the transform commands into filter mode.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// runStdinFilter transforms piped stdin to stdout. Binary input passes
// through untouched.
func runStdinFilter(ctx context.Context, cmd *cobra.Command, pipeline *transform.Pipeline, cfg *config.Config) error {
	if cfg.Write || cfg.Check || cfg.List {
		return fmt.Errorf("%w: --write, --check, and --list require file paths", ErrUsage)
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	result, err := pipeline.ProcessContent(ctx, "<stdin>", content, transform.PipelineOptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if cfg.Diff {
		if result.Diff != nil && result.Diff.HasChanges() {
			if _, err := io.WriteString(out, result.Diff.String()); err != nil {
				return fmt.Errorf("write diff: %w", err)
			}
		}
		return nil
	}

	output := result.Output
	if output == nil {
		output = content
	}
	if _, err := out.Write(output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
