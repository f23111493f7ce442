package fix

import (
	"fmt"
	"slices"
	"strings"
)

// Diff is a unified diff between two versions of a file.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Original holds the content before the fix pass.
	Original []byte

	// Modified holds the content after the fix pass.
	Modified []byte

	// Hunks lists the changed regions with surrounding context.
	Hunks []DiffHunk

	// Additions counts added lines across all hunks.
	Additions int

	// Deletions counts removed lines across all hunks.
	Deletions int
}

// DiffHunk is one contiguous changed region of a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int

	// OriginalCount is how many original lines the hunk covers.
	OriginalCount int

	// ModifiedStart is the 1-based first line of the hunk in the modified.
	ModifiedStart int

	// ModifiedCount is how many modified lines the hunk covers.
	ModifiedCount int

	// Lines holds the hunk body in display order.
	Lines []DiffLine
}

// DiffLine is one line of a hunk body.
type DiffLine struct {
	// Kind classifies the line as context, addition, or removal.
	Kind DiffLineKind

	// Content is the line text without the +/-/space prefix.
	Content string
}

// DiffLineKind classifies a DiffLine.
type DiffLineKind int

const (
	// DiffLineContext marks a line present in both versions.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd marks a line only in the modified version.
	DiffLineAdd

	// DiffLineRemove marks a line only in the original version.
	DiffLineRemove
)

// contextLines is how many unchanged lines surround each change.
const contextLines = 3

// GenerateDiff builds a unified diff for the transition from original to
// modified. It returns nil when the two versions have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if len(original) == 0 && len(modified) == 0 {
		return nil
	}

	before := toLines(original)
	after := toLines(modified)
	if slices.Equal(before, after) {
		return nil
	}

	script := editScript(before, after)
	hunks := hunksFromScript(script)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    hunks,
	}
	for _, op := range script {
		switch op.kind {
		case DiffLineAdd:
			d.Additions++
		case DiffLineRemove:
			d.Deletions++
		}
	}
	return d
}

// relPath drops any leading slash, the way git spells paths in headers.
func (d *Diff) relPath() string {
	return strings.TrimPrefix(d.Path, "/")
}

// GitHeader renders the "diff --git" line for this file.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := d.relPath()
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format, without the git header.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := d.relPath()

	var out strings.Builder
	fmt.Fprintf(&out, "--- a/%s\n", path)
	fmt.Fprintf(&out, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&out, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				fmt.Fprintf(&out, " %s\n", line.Content)
			case DiffLineAdd:
				fmt.Fprintf(&out, "+%s\n", line.Content)
			case DiffLineRemove:
				fmt.Fprintf(&out, "-%s\n", line.Content)
			}
		}
	}

	return out.String()
}

// FullString renders the diff with the git header on top.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// Stat returns a compact "+adds -dels" summary.
func (d *Diff) Stat() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("+%d -%d", d.Additions, d.Deletions)
}

// HasChanges reports whether the diff carries at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// toLines splits content for line-level diffing. A trailing newline does
// not produce a phantom empty line, and CR is stripped so CRLF files diff
// on content rather than on line endings.
func toLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// editOp is one step of the line-level edit script.
type editOp struct {
	kind DiffLineKind
	text string
}

// editScript aligns the two line sets on their longest common subsequence
// and emits removals, additions, and context in display order.
func editScript(before, after []string) []editOp {
	anchors := commonLines(before, after)

	var script []editOp
	b, a := 0, 0
	for _, anchor := range anchors {
		for b < len(before) && before[b] != anchor {
			script = append(script, editOp{kind: DiffLineRemove, text: before[b]})
			b++
		}
		for a < len(after) && after[a] != anchor {
			script = append(script, editOp{kind: DiffLineAdd, text: after[a]})
			a++
		}
		script = append(script, editOp{kind: DiffLineContext, text: anchor})
		b++
		a++
	}
	for ; b < len(before); b++ {
		script = append(script, editOp{kind: DiffLineRemove, text: before[b]})
	}
	for ; a < len(after); a++ {
		script = append(script, editOp{kind: DiffLineAdd, text: after[a]})
	}
	return script
}

// hunksFromScript slices the edit script into hunks. Changes closer than
// two context windows share a hunk so their context lines never overlap.
func hunksFromScript(script []editOp) []DiffHunk {
	var changed []int
	for i, op := range script {
		if op.kind != DiffLineContext {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var hunks []DiffHunk
	first := changed[0]
	last := changed[0]
	for _, idx := range changed[1:] {
		if idx-last > contextLines*2+1 {
			hunks = append(hunks, makeHunk(script, first, last+1))
			first = idx
		}
		last = idx
	}
	hunks = append(hunks, makeHunk(script, first, last+1))
	return hunks
}

// makeHunk materializes script[changeStart:changeEnd] plus surrounding
// context as a DiffHunk with header positions filled in.
func makeHunk(script []editOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(script))

	// Header line numbers count every op before the hunk that exists in
	// the respective version.
	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range script[:start] {
		if op.kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range script[start:end] {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.text})
		switch op.kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}
	return hunk
}

// commonLines returns the longest common subsequence of the two line sets.
func commonLines(before, after []string) []string {
	n, m := len(before), len(after)
	if n == 0 || m == 0 {
		return nil
	}

	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if before[i-1] == after[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
		}
	}

	length := table[n][m]
	if length == 0 {
		return nil
	}

	lcs := make([]string, length)
	for i, j := n, m; i > 0 && j > 0; {
		switch {
		case before[i-1] == after[j-1]:
			length--
			lcs[length] = before[i-1]
			i--
			j--
		case table[i-1][j] > table[i][j-1]:
			i--
		default:
			j--
		}
	}
	return lcs
}
