package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is applied when a caller passes mode 0.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic replaces the file at path with data without ever exposing a
// partially written file. The data goes to a temp file in the same
// directory, is synced, and is then renamed over the target, so readers
// observe either the old content or the new, never a truncated mix.
//
// On any failure the temp file is removed and the target is left as it was.
func WriteAtomic(ctx context.Context, path string, data []byte, mode os.FileMode) error {
	if err := cancelled(ctx, "write atomic"); err != nil {
		return err
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	// The temp file must live next to the target: rename is only atomic
	// within a file system.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	// CreateTemp opens with 0600; widen to the requested mode before the
	// rename makes the file visible under its real name.
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp: %w", err)
	}

	committed = true
	return nil
}

// WriteAtomicIfChanged writes data to path only when the current content
// differs, reporting whether a write happened. Skipping no-op writes keeps
// mod times stable and file watchers quiet.
func WriteAtomicIfChanged(ctx context.Context, path string, data []byte, mode os.FileMode) (bool, error) {
	if err := cancelled(ctx, "write atomic"); err != nil {
		return false, err
	}

	current, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// New file, nothing to compare against.
	case err != nil:
		return false, fmt.Errorf("read current: %w", err)
	case bytes.Equal(current, data):
		return false, nil
	}

	if err := WriteAtomic(ctx, path, data, mode); err != nil {
		return false, err
	}
	return true, nil
}
