package fix_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/gopystyle/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	// Each case validates one candidate edit against 10 bytes of content.
	cases := []struct {
		name    string
		edit    fix.TextEdit
		wantErr bool
	}{
		{"valid edit", fix.TextEdit{StartOffset: 0, EndOffset: 5, NewText: "x"}, false},
		{"negative start", fix.TextEdit{StartOffset: -1, EndOffset: 5}, true},
		{"end before start", fix.TextEdit{StartOffset: 5, EndOffset: 3}, true},
		{"end past content", fix.TextEdit{StartOffset: 0, EndOffset: 11}, true},
	}
	for _, tc := range cases {
		err := fix.ValidateEdits([]fix.TextEdit{tc.edit}, 10)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: ValidateEdits() error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if err != nil {
			var validationErr *fix.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("%s: error type = %T, want *ValidationError", tc.name, err)
			}
		}
	}

	if err := fix.ValidateEdits(nil, 10); err != nil {
		t.Errorf("ValidateEdits(nil) = %v, want nil", err)
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 10, EndOffset: 12},
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 10, EndOffset: 11},
		{StartOffset: 7, EndOffset: 7},
	}

	fix.SortEdits(edits)

	wantStarts := []int{0, 7, 10, 10}
	for i, want := range wantStarts {
		if edits[i].StartOffset != want {
			t.Errorf("edit %d start = %d, want %d", i, edits[i].StartOffset, want)
		}
	}

	// Ties break by end offset.
	if edits[2].EndOffset != 11 || edits[3].EndOffset != 12 {
		t.Error("equal starts should sort by end offset")
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	clean := []fix.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 5, EndOffset: 8},
	}
	if err := fix.DetectConflicts(clean); err != nil {
		t.Errorf("DetectConflicts() on adjacent edits = %v, want nil", err)
	}

	overlapping := []fix.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 3, EndOffset: 8},
	}
	err := fix.DetectConflicts(overlapping)
	if err == nil {
		t.Fatal("DetectConflicts() = nil for overlapping edits")
	}

	var conflictErr *fix.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Errorf("error type = %T, want *ConflictError", err)
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 6, EndOffset: 8, NewText: "b"},
		{StartOffset: 0, EndOffset: 3, NewText: "a"},
	}

	prepared, err := fix.PrepareEdits(edits, 10)
	if err != nil {
		t.Fatalf("PrepareEdits() error: %v", err)
	}

	if prepared[0].StartOffset != 0 || prepared[1].StartOffset != 6 {
		t.Error("PrepareEdits did not sort")
	}

	// Input order is preserved.
	if edits[0].StartOffset != 6 {
		t.Error("PrepareEdits mutated its input")
	}

	// Conflicts are errors in strict mode.
	conflicting := []fix.TextEdit{
		{StartOffset: 0, EndOffset: 5, NewText: "x"},
		{StartOffset: 2, EndOffset: 7, NewText: "y"},
	}
	if _, err := fix.PrepareEdits(conflicting, 10); err == nil {
		t.Error("PrepareEdits() = nil error for conflicting edits")
	}
}

func TestPrepareEditsFiltered(t *testing.T) {
	t.Parallel()

	t.Run("merges overlapping deletions", func(t *testing.T) {
		t.Parallel()

		edits := []fix.TextEdit{
			{StartOffset: 0, EndOffset: 5, NewText: ""},
			{StartOffset: 3, EndOffset: 8, NewText: ""},
		}

		accepted, skipped, merged, err := fix.PrepareEditsFiltered(edits, 10)
		if err != nil {
			t.Fatalf("PrepareEditsFiltered() error: %v", err)
		}
		if merged != 1 {
			t.Errorf("merged = %d, want 1", merged)
		}
		if len(skipped) != 0 {
			t.Errorf("skipped %d edits, want 0", len(skipped))
		}
		if len(accepted) != 1 || accepted[0].StartOffset != 0 || accepted[0].EndOffset != 8 {
			t.Errorf("accepted = %+v, want one deletion [0:8]", accepted)
		}
	})

	t.Run("skips overlapping replacements", func(t *testing.T) {
		t.Parallel()

		edits := []fix.TextEdit{
			{StartOffset: 0, EndOffset: 5, NewText: "a"},
			{StartOffset: 3, EndOffset: 8, NewText: "b"},
		}

		accepted, skipped, merged, err := fix.PrepareEditsFiltered(edits, 10)
		if err != nil {
			t.Fatalf("PrepareEditsFiltered() error: %v", err)
		}
		if merged != 0 {
			t.Errorf("merged = %d, want 0", merged)
		}
		if len(accepted) != 1 || accepted[0].NewText != "a" {
			t.Errorf("accepted = %+v, want only the first edit", accepted)
		}
		if len(skipped) != 1 || skipped[0].NewText != "b" {
			t.Errorf("skipped = %+v, want the second edit", skipped)
		}
	})

	t.Run("validation failures are errors", func(t *testing.T) {
		t.Parallel()

		edits := []fix.TextEdit{{StartOffset: -1, EndOffset: 2}}
		if _, _, _, err := fix.PrepareEditsFiltered(edits, 10); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestEditPredicates(t *testing.T) {
	t.Parallel()

	insert := fix.TextEdit{StartOffset: 3, EndOffset: 3, NewText: "x"}
	if !insert.IsInsert() || insert.IsDelete() {
		t.Error("insert edit misclassified")
	}

	deletion := fix.TextEdit{StartOffset: 3, EndOffset: 5, NewText: ""}
	if !deletion.IsDelete() || deletion.IsInsert() {
		t.Error("delete edit misclassified")
	}

	replace := fix.TextEdit{StartOffset: 3, EndOffset: 5, NewText: "y"}
	if replace.IsDelete() || replace.IsInsert() {
		t.Error("replacement edit misclassified")
	}
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	builder := fix.NewEditBuilder()
	builder.ReplaceRange(0, 4, "    ")
	builder.ReplaceByte(10, 'S')
	builder.Insert(20, " ")
	builder.Delete(30, 33)

	if len(builder.Edits) != 4 {
		t.Fatalf("builder has %d edits, want 4", len(builder.Edits))
	}

	byteEdit := builder.Edits[1]
	if byteEdit.StartOffset != 10 || byteEdit.EndOffset != 11 || byteEdit.NewText != "S" {
		t.Errorf("ReplaceByte edit = %+v", byteEdit)
	}

	if !builder.Edits[2].IsInsert() {
		t.Error("Insert should produce an insertion edit")
	}
	if !builder.Edits[3].IsDelete() {
		t.Error("Delete should produce a deletion edit")
	}
}
