// Package indent measures and rewrites the leading indentation of
// multi-line text.
//
// Text is treated as a sequence of lines, each carrying an indentation level
// (the length of its leading run of spaces) and content. The common level of
// a block is the minimum level over its non-blank lines. Rewriting moves the
// whole block to a new common level while preserving the relative offsets
// between lines; blank lines never influence the measurement and are always
// emitted fully empty.
//
// All functions are pure. Results are rejoined with "\n", preserving the
// input's own line count; CR and CRLF boundaries are accepted and
// normalized. Tabs are never treated as indentation: a tab ends the leading
// run and stays in the line's content.
package indent

import "strings"

// DefaultMarginPrefix is the margin delimiter TrimMargin strips.
const DefaultMarginPrefix = "|"

// Level returns the common indentation level of s: the smallest number of
// leading spaces found on any non-blank line. It returns 0 when s has no
// non-blank lines.
func Level(s string) int {
	return commonLevel(scan(s))
}

func commonLevel(lines []line) int {
	common := -1
	for _, l := range lines {
		if l.blank() {
			continue
		}
		if common == -1 || l.level < common {
			common = l.level
		}
	}

	if common == -1 {
		return 0
	}
	return common
}

// To rewrites s so that its common indentation level becomes target. Each
// non-blank line keeps its offset relative to the common level; a line whose
// resulting width would be negative is emitted with no indentation at all.
// Blank lines are emitted empty. Inputs with no non-blank lines produce "".
func To(s string, target int) string {
	lines := scan(s)
	if len(lines) == 0 {
		return ""
	}
	common := commonLevel(lines)

	var b strings.Builder
	b.Grow(len(s) + max(0, target-common)*len(lines))

	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if l.blank() {
			continue
		}

		width := target + (l.level - common)
		if width < 0 {
			width = 0
		}

		b.WriteString(strings.Repeat(" ", width))
		b.WriteString(l.content)
	}

	return b.String()
}

// Strip removes the common indentation entirely. It is equivalent to
// To(s, 0).
func Strip(s string) string {
	return To(s, 0)
}

// By shifts the common indentation level of s by delta, which may be
// negative. It is equivalent to To(s, Level(s)+delta).
func By(s string, delta int) string {
	return To(s, Level(s)+delta)
}

// TrimMargin trims leading whitespace followed by DefaultMarginPrefix from
// every line of s. See TrimMarginPrefix.
func TrimMargin(s string) string {
	return TrimMarginPrefix(s, DefaultMarginPrefix)
}

// TrimMarginPrefix rewrites s for the margin style of multi-line literals:
//
//	text := TrimMarginPrefix(`
//	        |first
//	        |second
//	        `, "|")
//
// Empty and all-whitespace inputs are returned unchanged. Otherwise the
// first and last lines are dropped when blank, and every remaining line has
// its leading whitespace plus one occurrence of prefix removed; a line that
// does not start with prefix after its leading whitespace is kept completely
// untouched. Lines are rejoined with "\n".
//
// An empty prefix matches every line, so lines simply lose their leading
// whitespace.
func TrimMarginPrefix(s, prefix string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}

	lines := splitLines(s)
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	for i, raw := range lines {
		trimmed := strings.TrimLeft(raw, " \t")
		if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
			lines[i] = rest
		}
	}

	return strings.Join(lines, "\n")
}
