package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/gopystyle/pkg/fsutil"
)

// seedFile writes a fixture and returns its path.
func seedFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return path
}

// snapshot reads a file through fsutil and returns its FileInfo.
func snapshot(t *testing.T, path string) *fsutil.FileInfo {
	t.Helper()
	_, info, err := fsutil.ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return info
}

// checkModified runs the full three-tier modification check.
func checkModified(t *testing.T, info *fsutil.FileInfo) bool {
	t.Helper()
	modified, err := fsutil.CheckModified(context.Background(), info)
	if err != nil {
		t.Fatalf("CheckModified() error = %v", err)
	}
	return modified
}

// checkModifiedQuick runs the size-and-mtime-only check.
func checkModifiedQuick(t *testing.T, info *fsutil.FileInfo) bool {
	t.Helper()
	modified, err := fsutil.CheckModifiedQuick(context.Background(), info)
	if err != nil {
		t.Fatalf("CheckModifiedQuick() error = %v", err)
	}
	return modified
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("content and snapshot", func(t *testing.T) {
		t.Parallel()

		const src = "import os\n\nprint(os.name)\n"
		path := seedFile(t, "module.py", src)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != src {
			t.Errorf("content = %q, want %q", got, src)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(src)) {
			t.Errorf("Size = %d, want %d", info.Size, len(src))
		}
		if info.Mode != 0644 {
			t.Errorf("Mode = %o, want %o", info.Mode, 0644)
		}
		if info.Hash == ([32]byte{}) {
			t.Error("Hash should be populated")
		}
	})

	t.Run("missing file maps to ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), "/no/such/script.py")
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory maps to ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, _, err := fsutil.ReadFile(ctx, "anything.py"); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("untouched file", func(t *testing.T) {
		t.Parallel()

		path := seedFile(t, "clean.py", "x = 1\n")
		if checkModified(t, snapshot(t, path)) {
			t.Error("untouched file reported as modified")
		}
	})

	t.Run("content rewrite detected", func(t *testing.T) {
		t.Parallel()

		path := seedFile(t, "edited.py", "x = 1\n")
		info := snapshot(t, path)

		if err := os.WriteFile(path, []byte("x = 2  # changed\n"), 0644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if !checkModified(t, info) {
			t.Error("rewrite not detected")
		}
	})

	t.Run("same-size rewrite detected by hash", func(t *testing.T) {
		t.Parallel()

		path := seedFile(t, "sneaky.py", "a = 1\n")
		info := snapshot(t, path)

		// Equal length, different bytes, and the original mod time put
		// back so only the hash tier can notice.
		if err := os.WriteFile(path, []byte("b = 2\n"), 0644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if err := os.Chtimes(path, info.ModTime, info.ModTime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
		if !checkModified(t, info) {
			t.Error("same-size rewrite slipped past the hash check")
		}
	})

	t.Run("deleted file counts as modified", func(t *testing.T) {
		t.Parallel()

		path := seedFile(t, "gone.py", "x = 1\n")
		info := snapshot(t, path)

		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if !checkModified(t, info) {
			t.Error("deleted file not reported as modified")
		}
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(context.Background(), nil)
		if !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Fatalf("error = %v, want ErrNilFileInfo", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := fsutil.CheckModified(cctx, &fsutil.FileInfo{Path: "x.py"}); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestCheckModifiedQuick(t *testing.T) {
	t.Parallel()

	t.Run("untouched file", func(t *testing.T) {
		t.Parallel()

		path := seedFile(t, "clean.py", "x = 1\n")
		if checkModifiedQuick(t, snapshot(t, path)) {
			t.Error("untouched file reported as modified")
		}
	})

	t.Run("size change detected", func(t *testing.T) {
		t.Parallel()

		path := seedFile(t, "grown.py", "x = 1\n")
		info := snapshot(t, path)

		if err := os.WriteFile(path, []byte("x = 1\ny = 2\n"), 0644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if !checkModifiedQuick(t, info) {
			t.Error("size change not detected")
		}
	})

	t.Run("mod time change detected", func(t *testing.T) {
		t.Parallel()

		path := seedFile(t, "touched.py", "x = 1\n")
		info := snapshot(t, path)

		later := info.ModTime.Add(time.Hour)
		if err := os.Chtimes(path, later, later); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
		if !checkModifiedQuick(t, info) {
			t.Error("mod time change not detected")
		}
	})
}
