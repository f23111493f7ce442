package pysrc

import (
	"bytes"
	"sort"
)

// BuildLines scans content into per-line metadata. Both LF and CRLF line
// breaks are recognized. A trailing newline does not produce an extra
// empty line, matching how Python's readlines splits source files.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo

	for start := 0; start < len(content); {
		rel := bytes.IndexByte(content[start:], '\n')
		if rel < 0 {
			// Final line runs to end of content with no break.
			lines = append(lines, LineInfo{
				StartOffset:  start,
				NewlineStart: len(content),
				EndOffset:    len(content),
			})
			break
		}

		end := start + rel + 1
		nl := end - 1
		if nl > start && content[nl-1] == '\r' {
			nl--
		}

		lines = append(lines, LineInfo{
			StartOffset:  start,
			NewlineStart: nl,
			EndOffset:    end,
		})
		start = end
	}

	return lines
}

// LineCount reports how many lines the file has.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to a 1-based line number and 0-based
// column. Columns count bytes, matching Python's col_offset convention.
// Out-of-range offsets report (0, -1).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, -1
	}

	// Offsets at or past the end of content map onto the last line so
	// that end-exclusive spans stay addressable.
	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - last.StartOffset
	}

	// First line whose end lies beyond the offset.
	i := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if i >= len(f.Lines) {
		i = len(f.Lines) - 1
	}
	if offset < f.Lines[i].StartOffset {
		return 0, -1
	}

	return i + 1, offset - f.Lines[i].StartOffset
}

// Offset converts a 1-based line and 0-based column back to a byte
// offset. The column may point one past the last byte of the line, which
// keeps end-exclusive spans representable. Reports false when the
// coordinates fall outside the file.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 0 {
		return 0, false
	}

	li := f.Lines[line-1]
	off := li.StartOffset + col
	if off > li.EndOffset {
		return 0, false
	}

	return off, true
}

// LineContent returns a 1-based line's content without its line break, or
// nil when the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	li := f.Lines[line-1]
	return f.Content[li.StartOffset:li.NewlineStart]
}
