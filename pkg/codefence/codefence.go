// Package codefence locates fenced code blocks in Markdown documents.
//
// Blocks are reported as physical line spans of the fence body, which makes
// them safe targets for byte-range edits: container indentation (lists,
// quotes) is included in the span even when the parser's own segments start
// past it.
package codefence

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Block describes one non-empty fenced code block.
type Block struct {
	// ContentStart is the byte offset of the first body line. It always
	// sits at the start of a physical line; fence lines are excluded.
	ContentStart int

	// ContentEnd is the byte offset just past the last body line,
	// including its terminator when present.
	ContentEnd int

	// Info is the fence info string, "" when absent.
	Info string

	// FenceIndent is the leading space count of the opening fence line.
	FenceIndent int
}

// Language returns the first word of the info string.
func (b Block) Language() string {
	lang, _, _ := strings.Cut(b.Info, " ")
	return lang
}

var md = goldmark.New()

// Extract parses src as CommonMark and returns its non-empty fenced code
// blocks in document order. Indented code blocks are not fences and are
// ignored.
func Extract(src []byte) []Block {
	if len(src) == 0 {
		return nil
	}

	doc := md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lines := fence.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		first := lines.At(0)
		last := lines.At(lines.Len() - 1)

		start := lineStart(src, first.Start)
		end := lineEnd(src, last.Stop-1)

		info := ""
		if fence.Info != nil {
			info = string(fence.Info.Value(src))
		}

		blocks = append(blocks, Block{
			ContentStart: start,
			ContentEnd:   end,
			Info:         info,
			FenceIndent:  fenceIndent(src, start),
		})

		return ast.WalkContinue, nil
	})

	return blocks
}

// lineStart returns the offset of the first byte of the line containing pos.
func lineStart(src []byte, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

// lineEnd returns the offset just past the line containing pos, including
// its newline when present.
func lineEnd(src []byte, pos int) int {
	if pos < 0 {
		pos = 0
	}
	if idx := bytes.IndexByte(src[pos:], '\n'); idx >= 0 {
		return pos + idx + 1
	}
	return len(src)
}

// fenceIndent counts the leading spaces of the opening fence line, which
// sits immediately above the block body.
func fenceIndent(src []byte, contentStart int) int {
	if contentStart == 0 {
		return 0
	}

	indent := 0
	for i := lineStart(src, contentStart-1); i < len(src) && src[i] == ' '; i++ {
		indent++
	}
	return indent
}
