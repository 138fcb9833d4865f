package indent_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/reindent/pkg/indent"
)

// fuzzTargetLimit keeps fuzzed levels small enough that emitting the space
// prefix stays cheap.
const fuzzTargetLimit = 1 << 12

func FuzzTo(f *testing.F) {
	// Add seed corpus.
	f.Add("", 0)
	f.Add("hello", 4)
	f.Add("  a\n    b", 0)
	f.Add("  a\n    b\n", 2)
	f.Add("\tx\n\t\ty", 1)
	f.Add("    \n        text\n    ", 8)
	f.Add("a\r\nb\r\n", 3)
	f.Add("  a\n   \n  b", -2)
	f.Add("a\rb", 1)

	f.Fuzz(func(t *testing.T, input string, target int) {
		if target > fuzzTargetLimit || target < -fuzzTargetLimit {
			return // Oversized target, skip.
		}

		// To should not panic.
		out := indent.To(input, target)

		// Separators are normalized: no carriage returns survive.
		if strings.Contains(out, "\r") {
			t.Errorf("To(%q, %d) output contains \\r", input, target)
		}

		if strings.TrimSpace(input) == "" {
			if out != "" {
				t.Errorf("To(%q, %d) = %q, want empty", input, target, out)
			}
			return
		}

		// The input's own line count is preserved.
		if want := countLines(input); strings.Count(out, "\n")+1 != want {
			t.Errorf("To(%q, %d): output %q has %d lines, want %d",
				input, target, out, strings.Count(out, "\n")+1, want)
		}

		// Blank lines are emitted fully empty.
		for _, outLine := range strings.Split(out, "\n") {
			if strings.TrimSpace(outLine) == "" && outLine != "" {
				t.Errorf("To(%q, %d): blank line emitted as %q, want empty",
					input, target, outLine)
			}
		}

		if target >= 0 {
			// The target becomes the output's common level.
			if got := indent.Level(out); got != target {
				t.Errorf("Level(To(%q, %d)) = %d, want %d", input, target, got, target)
			}

			// Re-leveling at the same target is a fixpoint.
			if again := indent.To(out, target); again != out {
				t.Errorf("To(To(%q, %d), %d) = %q, not a fixpoint", input, target, target, again)
			}
		}
	})
}

func FuzzToRoundTrip(f *testing.F) {
	// Add seed corpus.
	f.Add("  a\n    b", 0, 4)
	f.Add("    \n        text\n    ", 8, 0)
	f.Add("x\n", 2, 2)
	f.Add("\ty\n  z", 1, 5)

	f.Fuzz(func(t *testing.T, input string, intermediate, final int) {
		if intermediate < 0 || final < 0 {
			return // Round trip only holds for non-negative targets, skip.
		}
		if intermediate > fuzzTargetLimit || final > fuzzTargetLimit {
			return // Oversized target, skip.
		}

		direct := indent.To(input, final)
		via := indent.To(indent.To(input, intermediate), final)
		if via != direct {
			t.Errorf("To(To(%q, %d), %d) = %q, want %q",
				input, intermediate, final, via, direct)
		}
	})
}

func FuzzTrimMarginPrefix(f *testing.F) {
	// Add seed corpus.
	f.Add("", "|")
	f.Add("  |a\n  |b", "|")
	f.Add("\n    |One\n    |Two\n", "|")
	f.Add("  >>> a", ">>>")
	f.Add("no margin here", "|")
	f.Add("  ||x", "|")
	f.Add("  a\n  b", "")

	f.Fuzz(func(t *testing.T, input, prefix string) {
		// TrimMarginPrefix should not panic.
		out := indent.TrimMarginPrefix(input, prefix)

		// All-whitespace inputs pass through unchanged.
		if strings.TrimSpace(input) == "" {
			if out != input {
				t.Errorf("TrimMarginPrefix(%q, %q) = %q, want input unchanged", input, prefix, out)
			}
			return
		}

		// Separators are normalized and lines are never invented.
		if strings.Contains(out, "\r") {
			t.Errorf("TrimMarginPrefix(%q, %q) output contains \\r", input, prefix)
		}
		if got, limit := strings.Count(out, "\n")+1, countLines(input); got > limit {
			t.Errorf("TrimMarginPrefix(%q, %q): line count grew from %d to %d",
				input, prefix, limit, got)
		}
	})
}

func FuzzLevel(f *testing.F) {
	// Add seed corpus.
	f.Add("")
	f.Add("    ")
	f.Add("  Hello\n World")
	f.Add("    \n        Hello World!\n    ")
	f.Add("\t\tx")
	f.Add("a\r\n  b")

	f.Fuzz(func(t *testing.T, input string) {
		level := indent.Level(input)
		if level < 0 {
			t.Errorf("Level(%q) = %d, want >= 0", input, level)
		}

		// Strip always lands on level zero.
		if got := indent.Level(indent.Strip(input)); got != 0 {
			t.Errorf("Level(Strip(%q)) = %d, want 0", input, got)
		}

		// By(0) re-levels to the measured level.
		if indent.By(input, 0) != indent.To(input, level) {
			t.Errorf("By(%q, 0) != To(%q, %d)", input, input, level)
		}
	})
}

// countLines counts lines the way the transforms segment them: LF, CRLF, and
// lone CR all terminate a line, and a terminator implies a following line.
func countLines(s string) int {
	count := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			count++
		case '\r':
			count++
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		}
	}
	return count
}
