package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/reindent/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 3 // FILE, LEVEL, LANGUAGE
	minFileWidth     = 20
	minLevelWidth    = 5 // len("LEVEL")
	minLangWidth     = 8 // len("LANGUAGE")
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow represents a single file's measurement in the level table.
type TableRow struct {
	File     string
	Level    string
	Language string
	Err      error
}

// TableFormatter formats indentation measurements as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatLevels formats runner results as a measurement table, one row per
// measured file. Skipped files carry no measurement and are omitted.
func (t *TableFormatter) FormatLevels(result *runner.Result) string {
	rows := collectRows(result)
	if len(rows) == 0 {
		return ""
	}

	colWidths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(colWidths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(colWidths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, colWidths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(colWidths))
	builder.WriteString("\n")

	return builder.String()
}

// collectRows converts file outcomes to table rows.
func collectRows(result *runner.Result) []TableRow {
	if result == nil {
		return nil
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		if file.Error != nil {
			rows = append(rows, TableRow{File: file.Path, Err: file.Error})
			continue
		}
		if file.Result == nil || file.Result.Skipped {
			continue
		}
		rows = append(rows, TableRow{
			File:     file.Path,
			Level:    strconv.Itoa(file.Result.Level),
			Language: file.Result.Language,
		})
	}

	return rows
}

type columnWidths struct {
	file  int
	level int
	lang  int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:  minFileWidth,
		level: minLevelWidth,
		lang:  minLangWidth,
	}

	for _, row := range rows {
		if len(row.File) > widths.file {
			widths.file = len(row.File)
		}
		if len(row.Language) > widths.lang {
			widths.lang = len(row.Language)
		}
	}

	// Constrain to terminal width by shrinking the file column; the
	// filename tail survives truncation.
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.level + widths.lang + (tablePadding * tableColumnCount)
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %-*s",
		widths.file, "FILE",
		widths.level, "LEVEL",
		widths.lang, "LANGUAGE",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	sep := strings.Repeat(heavySeparator, t.calculateTotalWidth(widths))
	return t.styles.TableSeparator.Render(sep)
}

// formatRow formats a single table row. Rows are styled whole so column
// widths never have to account for escape sequences. Error rows span the
// measurement columns.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	file := truncateFilePath(row.File, widths.file)

	if row.Err != nil {
		content := fmt.Sprintf(" %-*s  error: %v", widths.file, file, row.Err)
		return t.styles.Error.Render(content)
	}

	lang := truncateString(row.Language, widths.lang)
	return fmt.Sprintf(" %-*s  %*s  %-*s",
		widths.file, file,
		widths.level, row.Level,
		widths.lang, lang,
	)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
