// Package transform turns the pure indentation engine into file-level
// operations. It dispatches the supported operations, restores each file's
// line-ending flavor after the engine normalizes, and runs the safety
// pipeline used for in-place rewrites.
package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/reindent/pkg/indent"
)

// Op identifies an indentation operation.
type Op string

const (
	// OpMeasure reports the common indentation level without rewriting.
	OpMeasure Op = "measure"

	// OpSet re-levels content to an absolute indentation level.
	OpSet Op = "set"

	// OpShift moves the indentation level by a signed delta.
	OpShift Op = "shift"

	// OpStrip removes the common indentation.
	OpStrip Op = "strip"

	// OpMargin trims a margin prefix from every line.
	OpMargin Op = "margin"

	// OpFences re-levels fenced code block bodies in Markdown.
	OpFences Op = "fences"
)

// IsValid reports whether op names a known operation.
func (op Op) IsValid() bool {
	switch op {
	case OpMeasure, OpSet, OpShift, OpStrip, OpMargin, OpFences:
		return true
	default:
		return false
	}
}

// String returns the operation name.
func (op Op) String() string {
	return string(op)
}

// Options carries the per-operation parameters. Only the field matching the
// operation is consulted.
type Options struct {
	// Level is the target indentation level for OpSet.
	Level int

	// Delta is the signed level change for OpShift.
	Delta int

	// MarginPrefix is the margin delimiter for OpMargin. An empty prefix
	// strips leading whitespace only.
	MarginPrefix string

	// FenceLevel is the body level above the fence indent for OpFences.
	FenceLevel int
}

// ErrUnknownOp is returned when Apply is given an operation it does not know.
var ErrUnknownOp = errors.New("unknown operation")

// Apply runs a single operation over content. The engine normalizes line
// terminators to LF; Apply restores the input's CRLF flavor and its final
// terminator so files round-trip cleanly.
func Apply(content []byte, op Op, opts Options) ([]byte, error) {
	// OpMeasure must return the input bytes untouched so the pipeline
	// records the file as unchanged.
	if op == OpMeasure {
		return content, nil
	}
	if op == OpFences {
		return applyFences(content, opts)
	}

	src := string(content)
	var out string

	switch op {
	case OpSet:
		out = indent.To(src, opts.Level)
	case OpShift:
		out = indent.By(src, opts.Delta)
	case OpStrip:
		out = indent.Strip(src)
	case OpMargin:
		out = indent.TrimMarginPrefix(src, opts.MarginPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}

	return restoreLineEndings(content, out), nil
}

// Measure returns the common indentation level of content.
func Measure(content []byte) int {
	return indent.Level(string(content))
}

// restoreLineEndings reapplies the original content's line-ending flavor and
// final terminator to transformed text. Margin trimming may drop a blank
// last line; re-appending the terminator keeps files properly terminated.
func restoreLineEndings(original []byte, transformed string) []byte {
	crlf := usesCRLF(original)
	if crlf {
		transformed = strings.ReplaceAll(transformed, "\n", "\r\n")
	}

	if hasFinalTerminator(original) && !strings.HasSuffix(transformed, "\n") {
		if crlf {
			transformed += "\r\n"
		} else {
			transformed += "\n"
		}
	}

	return []byte(transformed)
}

// usesCRLF reports whether the first line terminator in content is CRLF.
// Mixed-terminator files are unified to the first flavor seen; a lone CR
// counts as LF.
func usesCRLF(content []byte) bool {
	for i, b := range content {
		switch b {
		case '\n':
			return false
		case '\r':
			return i+1 < len(content) && content[i+1] == '\n'
		}
	}
	return false
}

// hasFinalTerminator reports whether content ends with a line terminator.
func hasFinalTerminator(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	last := content[len(content)-1]
	return last == '\n' || last == '\r'
}
