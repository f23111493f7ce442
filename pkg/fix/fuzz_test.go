package fix_test

import (
	"testing"

	"github.com/yaklabco/gopystyle/pkg/fix"
)

func FuzzGenerateDiff(f *testing.F) {
	// Seeds cover no-op, whitespace, reorder, and CRLF inputs.
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("x = 1\n"), []byte("x = 1\n"))
	f.Add([]byte("x = 1   \n"), []byte("x = 1\n"))
	f.Add([]byte("import b\nimport a\n"), []byte("import a\nimport b\n"))
	f.Add([]byte("x=1\ny=2\nz=3\n"), []byte("x = 1\ny=2\nz = 3\n"))
	f.Add([]byte("def f():\n    pass\n"), []byte("def f():\n    pass\n    return\n"))
	f.Add([]byte("a\r\nb\r\n"), []byte("a\nb\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		diff := fix.GenerateDiff("fuzz.py", original, modified)

		// nil means the contents are equivalent.
		if diff == nil {
			return
		}

		if diff.Path != "fuzz.py" {
			t.Errorf("Path = %q, want fuzz.py", diff.Path)
		}

		// Rendering must survive arbitrary input.
		_ = diff.String()

		if !diff.HasChanges() && len(diff.Hunks) > 0 {
			t.Error("HasChanges() false with non-empty Hunks")
		}

		// Hunk structure invariants.
		for i, hunk := range diff.Hunks {
			if hunk.OriginalStart < 1 || hunk.ModifiedStart < 1 {
				t.Errorf("hunk %d: start positions must be 1-based, got (%d, %d)",
					i, hunk.OriginalStart, hunk.ModifiedStart)
			}

			var ctx, add, rem int
			for _, line := range hunk.Lines {
				switch line.Kind {
				case fix.DiffLineContext:
					ctx++
				case fix.DiffLineAdd:
					add++
				case fix.DiffLineRemove:
					rem++
				}
			}

			if hunk.OriginalCount != ctx+rem {
				t.Errorf("hunk %d: OriginalCount = %d, want %d", i, hunk.OriginalCount, ctx+rem)
			}
			if hunk.ModifiedCount != ctx+add {
				t.Errorf("hunk %d: ModifiedCount = %d, want %d", i, hunk.ModifiedCount, ctx+add)
			}
		}
	})
}

func FuzzApplyEdits(f *testing.F) {
	// Seeds: content with an edit range and replacement.
	f.Add([]byte("x = 1   \n"), 5, 8, "")
	f.Add([]byte("class shape:\n"), 6, 7, "S")
	f.Add([]byte("a=1\n"), 1, 1, " ")
	f.Add([]byte(""), 0, 0, "pass")

	f.Fuzz(func(t *testing.T, content []byte, start, end int, text string) {
		edits := []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: text}}

		prepared, err := fix.PrepareEdits(edits, len(content))
		if err != nil {
			// Invalid ranges are rejected, never applied.
			return
		}

		// Applying prepared edits should not panic.
		result := fix.ApplyEdits(content, prepared)

		wantLen := len(content) + len(text) - (end - start)
		if len(result) != wantLen {
			t.Errorf("result length = %d, want %d", len(result), wantLen)
		}
	})
}
