package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/reindent/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files rewritten, 1 skipped (12 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		note := fmt.Sprintf(" (%d files checked)", stats.FilesProcessed)
		if stats.FilesSkipped > 0 {
			note = fmt.Sprintf(" (%d files checked, %d skipped)", stats.FilesProcessed, stats.FilesSkipped)
		}
		return s.Success.Render("No changes needed") + s.Dim.Render(note) + "\n"
	}

	var parts []string

	if stats.FilesWritten > 0 {
		fileWord := wordFiles
		if stats.FilesWritten == 1 {
			fileWord = wordFile
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s rewritten", stats.FilesWritten, fileWord)))
	}

	// Changed but unwritten files remain pending: check mode, or a write
	// skipped after a concurrent modification.
	if pending := stats.FilesChanged - stats.FilesWritten; pending > 0 {
		fileWord := wordFiles
		if pending == 1 {
			fileWord = wordFile
		}
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s would change", pending, fileWord)))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	if stats.FilesErrored > 0 {
		errorWord := "errors"
		if stats.FilesErrored == 1 {
			errorWord = "error"
		}
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s", stats.FilesErrored, errorWord)))
	}

	checked := s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
	return strings.Join(parts, ", ") + checked + "\n"
}
