package edit

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between two versions of a document.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Hunks contains the change hunks with surrounding context.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines removed.
	Deletions int
}

// Hunk is one contiguous region of changes plus context lines.
type Hunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int

	// OriginalCount is the number of original lines covered by the hunk.
	OriginalCount int

	// ModifiedStart is the 1-based first line of the hunk in the modified.
	ModifiedStart int

	// ModifiedCount is the number of modified lines covered by the hunk.
	ModifiedCount int

	// Lines are the rendered diff lines.
	Lines []Line
}

// Line is a single diff line without its prefix character.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind classifies a diff line.
type LineKind int

const (
	// Context is a line present in both versions.
	Context LineKind = iota

	// Added is a line present only in the modified version.
	Added

	// Removed is a line present only in the original version.
	Removed
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// NewDiff compares original and modified content and returns their unified
// diff. It returns nil when the two versions render the same lines.
func NewDiff(path string, original, modified []byte) *Diff {
	origLines := diffLines(original)
	modLines := diffLines(modified)

	ops := diffOps(origLines, modLines)

	changed := false
	for _, op := range ops {
		if op.kind != Context {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{
		Path:  path,
		Hunks: assembleHunks(ops),
	}
	for _, hunk := range d.Hunks {
		for _, l := range hunk.Lines {
			switch l.Kind {
			case Added:
				d.Additions++
			case Removed:
				d.Deletions++
			}
		}
	}

	return d
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// Header returns the "diff --git" style header line.
func (d *Diff) Header() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format without the git header.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, l := range hunk.Lines {
			switch l.Kind {
			case Context:
				fmt.Fprintf(&b, " %s\n", l.Content)
			case Added:
				fmt.Fprintf(&b, "+%s\n", l.Content)
			case Removed:
				fmt.Fprintf(&b, "-%s\n", l.Content)
			}
		}
	}

	return b.String()
}

// FullString renders the diff with the git header included.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.Header() + "\n" + d.String()
}

// diffLines splits content for line-based comparison. A trailing newline
// does not contribute an empty trailing line.
func diffLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// op is one step of the line-level diff.
type op struct {
	kind    LineKind
	content string
}

// diffOps walks original and modified against their longest common
// subsequence and emits the full operation sequence.
func diffOps(orig, mod []string) []op {
	lcs := lcsLines(orig, mod)

	ops := make([]op, 0, max(len(orig), len(mod)))
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx] == lcs[lcsIdx] && mod[modIdx] == lcs[lcsIdx] {
			ops = append(ops, op{kind: Context, content: orig[origIdx]})
			origIdx++
			modIdx++
			lcsIdx++
			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: Removed, content: orig[origIdx]})
			origIdx++
		}
		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: Added, content: mod[modIdx]})
			modIdx++
		}
	}

	return ops
}

// assembleHunks groups change runs into hunks, merging runs whose context
// windows touch.
func assembleHunks(ops []op) []Hunk {
	type span struct {
		start, end int
	}

	var spans []span
	inChange := false
	spanStart := 0

	for i, o := range ops {
		isChange := o.kind != Context
		switch {
		case isChange && !inChange:
			spanStart = i
			inChange = true
		case !isChange && inChange:
			spans = append(spans, span{spanStart, i})
			inChange = false
		}
	}
	if inChange {
		spans = append(spans, span{spanStart, len(ops)})
	}
	if len(spans) == 0 {
		return nil
	}

	var hunks []Hunk
	for i := 0; i < len(spans); {
		end := i + 1
		for end < len(spans) && spans[end].start-spans[end-1].end <= contextLines*2 {
			end++
		}

		hunks = append(hunks, hunkFrom(ops, spans[i].start, spans[end-1].end))
		i = end
	}

	return hunks
}

// hunkFrom builds one hunk for ops[changeStart:changeEnd] expanded by the
// context window.
func hunkFrom(ops []op, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	origStart, modStart := 1, 1
	for i := range start {
		if ops[i].kind != Added {
			origStart++
		}
		if ops[i].kind != Removed {
			modStart++
		}
	}

	hunk := Hunk{
		OriginalStart: origStart,
		ModifiedStart: modStart,
		Lines:         make([]Line, 0, end-start),
	}

	for i := start; i < end; i++ {
		hunk.Lines = append(hunk.Lines, Line{Kind: ops[i].kind, Content: ops[i].content})

		switch ops[i].kind {
		case Context:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case Removed:
			hunk.OriginalCount++
		case Added:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

// lcsLines computes the longest common subsequence of two line slices.
func lcsLines(orig, mod []string) []string {
	if len(orig) == 0 || len(mod) == 0 {
		return nil
	}

	dp := make([][]int, len(orig)+1)
	for i := range dp {
		dp[i] = make([]int, len(mod)+1)
	}

	for row := 1; row <= len(orig); row++ {
		for col := 1; col <= len(mod); col++ {
			if orig[row-1] == mod[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	length := dp[len(orig)][len(mod)]
	if length == 0 {
		return nil
	}

	lcs := make([]string, length)
	row, col, idx := len(orig), len(mod), length-1
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == mod[col-1]:
			lcs[idx] = orig[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
