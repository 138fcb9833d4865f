package transform

import (
	"fmt"
	"strings"

	"github.com/yaklabco/reindent/pkg/codefence"
	"github.com/yaklabco/reindent/pkg/edit"
	"github.com/yaklabco/reindent/pkg/indent"
)

// applyFences re-levels the body of every fenced code block to the fence's
// own indent plus opts.FenceLevel. Everything outside the fence bodies is
// left byte for byte intact.
func applyFences(content []byte, opts Options) ([]byte, error) {
	blocks := codefence.Extract(content)
	if len(blocks) == 0 {
		return content, nil
	}

	crlf := usesCRLF(content)
	var edits []edit.TextEdit

	for _, block := range blocks {
		body := string(content[block.ContentStart:block.ContentEnd])

		// A whitespace-only body carries no indentation signal.
		if strings.TrimSpace(body) == "" {
			continue
		}

		releveled := indent.To(body, block.FenceIndent+opts.FenceLevel)
		if crlf {
			releveled = strings.ReplaceAll(releveled, "\n", "\r\n")
		}

		if releveled == body {
			continue
		}

		edits = append(edits, edit.TextEdit{
			StartOffset: block.ContentStart,
			EndOffset:   block.ContentEnd,
			NewText:     releveled,
		})
	}

	if len(edits) == 0 {
		return content, nil
	}

	out, err := edit.Replace(content, edits)
	if err != nil {
		return nil, fmt.Errorf("splice fence edits: %w", err)
	}

	return out, nil
}
