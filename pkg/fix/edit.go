// Package fix provides text edit types and application logic for auto-correction.
//
// Rules describe corrections as byte-range replacements against the original
// file content. Edits are validated, ordered, and checked for overlap before
// application, so conflicting corrections are reported rather than silently
// clobbering each other.
package fix

// TextEdit is one replacement of a byte range.
// Offsets always refer to the content the edit was computed against.
type TextEdit struct {
	// StartOffset is the inclusive byte index where the edit begins.
	StartOffset int

	// EndOffset is the exclusive byte index where the edit ends.
	EndOffset int

	// NewText replaces the covered range.
	NewText string
}

// IsInsert reports whether the edit adds text without removing any.
func (e TextEdit) IsInsert() bool {
	return e.StartOffset == e.EndOffset && e.NewText != ""
}

// IsDelete reports whether the edit removes text without replacement.
func (e TextEdit) IsDelete() bool {
	return e.StartOffset < e.EndOffset && e.NewText == ""
}

// EditBuilder collects the edits a rule proposes for one file, keeping the
// rule code away from raw offset bookkeeping.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder returns an empty builder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange proposes replacing bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// ReplaceByte proposes swapping out the single byte at offset.
func (b *EditBuilder) ReplaceByte(offset int, replacement byte) {
	b.ReplaceRange(offset, offset+1, string(replacement))
}

// Insert proposes inserting text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete proposes removing bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
