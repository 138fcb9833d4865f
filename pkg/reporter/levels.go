package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/reindent/internal/ui/pretty"
	"github.com/yaklabco/reindent/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// LevelReporter renders per-file indentation measurements as a
// column-aligned table.
type LevelReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewLevelReporter creates a reporter for measurement output. JSON output
// falls through to the standard JSON document; text renders a table.
func NewLevelReporter(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
		styles := pretty.NewStyles(colorEnabled)
		return &LevelReporter{
			opts:      opts,
			styles:    styles,
			formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
			bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format for level output: %s", format)
	}
}

// Report implements Reporter.
func (r *LevelReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	table := r.formatter.FormatLevels(result)
	if table == "" {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No files measured."))
		return nil
	}

	fmt.Fprint(r.bw, table)

	if r.opts.ShowSummary {
		fileWord := "files"
		if result.Stats.FilesProcessed == 1 {
			fileWord = "file"
		}
		fmt.Fprintln(r.bw, r.styles.Dim.Render(
			fmt.Sprintf(" %d %s measured", result.Stats.FilesProcessed, fileWord),
		))
	}

	return nil
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
