// Package edit applies byte-range replacements to text and renders unified
// diffs between document versions.
package edit

import (
	"bytes"
	"fmt"
	"sort"
)

// TextEdit replaces the bytes in [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// RangeError describes an edit whose offsets do not fit the content.
type RangeError struct {
	Edit    TextEdit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("edit range [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// OverlapError describes two edits competing for the same bytes.
type OverlapError struct {
	First  TextEdit
	Second TextEdit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping edits [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// Prepare returns a sorted copy of edits after checking every range against
// contentLen and rejecting overlaps. The input slice is not modified.
func Prepare(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	for _, e := range edits {
		switch {
		case e.StartOffset < 0:
			return nil, &RangeError{Edit: e, Message: "negative start offset"}
		case e.EndOffset < e.StartOffset:
			return nil, &RangeError{Edit: e, Message: "end offset before start offset"}
		case e.EndOffset > contentLen:
			return nil, &RangeError{
				Edit:    e,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", e.EndOffset, contentLen),
			}
		}
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartOffset != sorted[j].StartOffset {
			return sorted[i].StartOffset < sorted[j].StartOffset
		}
		return sorted[i].EndOffset < sorted[j].EndOffset
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].StartOffset < sorted[i-1].EndOffset {
			return nil, &OverlapError{First: sorted[i-1], Second: sorted[i]}
		}
	}

	return sorted, nil
}

// Apply splices a prepared slice of edits into content in one pass. Edits
// must be sorted and non-overlapping; use Prepare first.
func Apply(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}

// Replace prepares and applies edits against content.
func Replace(content []byte, edits []TextEdit) ([]byte, error) {
	prepared, err := Prepare(edits, len(content))
	if err != nil {
		return nil, err
	}
	return Apply(content, prepared), nil
}
