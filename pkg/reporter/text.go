package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/reindent/internal/ui/pretty"
	"github.com/yaklabco/reindent/pkg/runner"
	"github.com/yaklabco/reindent/pkg/transform"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary && !r.opts.ListOnly {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to process."))
		}
		return nil
	}

	if r.opts.ListOnly {
		r.reportList(result)
		return nil
	}

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		// Handle file errors
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || !noteworthy(file.Result) {
			continue
		}

		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.renderStatus(file.Result),
		)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return nil
}

// reportList emits only the paths of files whose content would change.
func (r *TextReporter) reportList(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil || !file.Result.Changed {
			continue
		}
		fmt.Fprintln(r.bw, displayPath(file.Path, r.opts.WorkingDir))
	}
}

// noteworthy reports whether a result deserves its own output line.
// Unchanged files stay quiet so large runs do not drown the signal.
func noteworthy(res *transform.FileResult) bool {
	return res.Changed || res.Skipped
}

// renderStatus styles the result summary to match the outcome.
func (r *TextReporter) renderStatus(res *transform.FileResult) string {
	summary := res.Summary()
	switch {
	case res.Skipped:
		return r.styles.Dim.Render(summary)
	case res.Written:
		return r.styles.Success.Render(summary)
	default:
		return r.styles.Warning.Render(summary)
	}
}

// displayPath renders path relative to workingDir when the result stays
// inside it.
func displayPath(path, workingDir string) string {
	if workingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
