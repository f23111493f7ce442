package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bad edit range [%d,%d): %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError reports two edits whose ranges overlap.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("edits [%d,%d) and [%d,%d) overlap",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// invalidReason explains why an edit cannot apply to content of the given
// length, or returns "" for a well-formed edit.
func invalidReason(edit TextEdit, contentLen int) string {
	switch {
	case edit.StartOffset < 0:
		return "start offset is negative"
	case edit.EndOffset < edit.StartOffset:
		return "end offset is before start offset"
	case edit.EndOffset > contentLen:
		return fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen)
	}
	return ""
}

// ValidateEdits checks every edit's range against the content length and
// returns the first problem found, or nil.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		if reason := invalidReason(edit, contentLen); reason != "" {
			return &ValidationError{Edit: edit, Message: reason}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, breaking ties on end offset, so
// application order is deterministic.
func SortEdits(edits []TextEdit) {
	slices.SortFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.EndOffset, b.EndOffset)
	})
}

// DetectConflicts scans a SortEdits-ordered slice for overlaps and returns
// the first pair found, or nil.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].StartOffset < edits[i-1].EndOffset {
			return &ConflictError{First: edits[i-1], Second: edits[i]}
		}
	}
	return nil
}

// sortedCopy clones and orders edits without touching the caller's slice.
func sortedCopy(edits []TextEdit) []TextEdit {
	out := make([]TextEdit, len(edits))
	copy(out, edits)
	SortEdits(out)
	return out
}

// PrepareEdits validates, sorts, and overlap-checks edits, returning an
// ordered copy ready for ApplyEdits. Conflicts are errors here; use
// PrepareEditsFiltered to resolve them instead.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := sortedCopy(edits)
	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// canMerge reports whether two overlapping edits may be combined.
// Only pure deletions merge safely.
func canMerge(a, b TextEdit) bool {
	return a.NewText == "" && b.NewText == ""
}

// mergeEdits unions two overlapping deletions into one.
func mergeEdits(a, b TextEdit) TextEdit {
	return TextEdit{
		StartOffset: min(a.StartOffset, b.StartOffset),
		EndOffset:   max(a.EndOffset, b.EndOffset),
	}
}

// resolveOverlaps walks a SortEdits-ordered slice and settles each overlap.
// Overlapping deletions merge into one; for any other overlap the earlier
// edit wins and the later one is set aside. Set-aside edits usually land
// on the next fix pass, once the surrounding text has settled.
//
// It returns the edits to apply, the edits set aside, and how many merges
// happened, for reporting.
func resolveOverlaps(edits []TextEdit) ([]TextEdit, []TextEdit, int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	accepted := make([]TextEdit, 0, len(edits))
	skipped := make([]TextEdit, 0)
	merged := 0

	pending := edits[0]
	for _, edit := range edits[1:] {
		switch {
		case edit.StartOffset >= pending.EndOffset:
			accepted = append(accepted, pending)
			pending = edit
		case canMerge(pending, edit):
			pending = mergeEdits(pending, edit)
			merged++
		default:
			skipped = append(skipped, edit)
		}
	}
	accepted = append(accepted, pending)

	return accepted, skipped, merged
}

// PrepareEditsFiltered validates and sorts edits, then resolves conflicts
// instead of failing on them. It returns the edits to apply, the edits set
// aside, the merge count, and an error only for range validation failures.
func PrepareEditsFiltered(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	accepted, skipped, merged := resolveOverlaps(sortedCopy(edits))
	return accepted, skipped, merged, nil
}
