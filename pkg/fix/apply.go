package fix

// ApplyEdits applies a sorted, non-overlapping slice of edits to content.
// Edits must be prepared with PrepareEdits or PrepareEditsFiltered first.
// Returns new content; the input slice is never modified.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	// Size the result exactly.
	size := len(content)
	for _, e := range edits {
		size += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	out := make([]byte, 0, size)

	pos := 0
	for _, e := range edits {
		out = append(out, content[pos:e.StartOffset]...)
		out = append(out, e.NewText...)
		pos = e.EndOffset
	}
	out = append(out, content[pos:]...)

	return out
}
