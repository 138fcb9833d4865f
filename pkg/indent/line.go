package indent

import "strings"

// line is the unit of the indentation model: a physical line reduced to the
// width of its leading space run and the content after it.
type line struct {
	// level is the number of leading space characters. Tabs are never part
	// of the leading run; a tab ends it and belongs to content.
	level int

	// content is the line with its leading space run removed. It never
	// starts with a space.
	content string
}

// blank reports whether the line holds no visible content. Blank lines carry
// no indentation signal.
func (l line) blank() bool {
	return strings.TrimSpace(l.content) == ""
}

// splitLines segments s at universal line boundaries: LF, CRLF, and lone CR
// all terminate a line. A terminator implies a following line, so "a\n"
// yields ["a", ""]. Joining the result with "\n" and resplitting is lossless
// apart from separator flavor.
func splitLines(s string) []string {
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}

	return append(lines, s[start:])
}

// scan builds the line model for s. Empty and all-whitespace inputs yield no
// lines: there is nothing to measure and nothing to re-emit.
func scan(s string) []line {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	raw := splitLines(s)
	lines := make([]line, len(raw))
	for i, r := range raw {
		lines[i] = scanLine(r)
	}

	return lines
}

// scanLine splits one line into its leading space run and the remainder.
func scanLine(s string) line {
	rest := strings.TrimLeft(s, " ")
	return line{
		level:   len(s) - len(rest),
		content: rest,
	}
}
