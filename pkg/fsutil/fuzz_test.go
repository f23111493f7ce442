package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gopystyle/pkg/fsutil"
)

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("x = 1\n"))
	f.Add([]byte("def f():\n    return 1\n"))
	f.Add([]byte("x = 1   \n"))
	f.Add([]byte("# -*- coding: latin-1 -*-\n\xe9\n"))
	f.Add(make([]byte, 4096))

	f.Fuzz(func(t *testing.T, data []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.py")

		if err := fsutil.WriteAtomic(context.Background(), path, data, 0644); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read back failed: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
		}
	})
}

func FuzzReadFileCheckModified(f *testing.F) {
	f.Add([]byte("x = 1\n"))
	f.Add([]byte("import os\nimport sys\n"))
	f.Add([]byte(""))
	f.Add(bytes.Repeat([]byte("pass\n"), 200))

	f.Fuzz(func(t *testing.T, data []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.py")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		ctx := context.Background()
		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("read mismatch: got %d bytes, want %d", len(got), len(data))
		}

		// Nothing touched the file, so the snapshot must still match it.
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if modified {
			t.Error("unmodified file reported as modified")
		}
	})
}
