package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/reindent/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	Level      int    `json:"level"`
	Language   string `json:"language,omitempty"`
	Changed    bool   `json:"changed"`
	Written    bool   `json:"written"`
	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skipReason,omitempty"`
	OldSum     string `json:"checksumBefore,omitempty"`
	NewSum     string `json:"checksumAfter,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesChanged    int `json:"filesChanged"`
	FilesWritten    int `json:"filesWritten"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	// Pre-allocate if we have files
	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path: displayPath(file.Path, r.opts.WorkingDir),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			fileResult.Level = res.Level
			fileResult.Language = res.Language
			fileResult.Changed = res.Changed
			fileResult.Written = res.Written
			fileResult.Skipped = res.Skipped
			fileResult.SkipReason = string(res.SkipReason)
			if res.OldSum != 0 {
				fileResult.OldSum = fmt.Sprintf("%016x", res.OldSum)
			}
			if res.NewSum != 0 {
				fileResult.NewSum = fmt.Sprintf("%016x", res.NewSum)
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	output.Summary = JSONSummary{
		FilesDiscovered: result.Stats.FilesDiscovered,
		FilesProcessed:  result.Stats.FilesProcessed,
		FilesChanged:    result.Stats.FilesChanged,
		FilesWritten:    result.Stats.FilesWritten,
		FilesSkipped:    result.Stats.FilesSkipped,
		FilesErrored:    result.Stats.FilesErrored,
	}

	return output
}
