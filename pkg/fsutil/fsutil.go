// Package fsutil provides the file system safety primitives gopystyle uses
// when rewriting Python source: guarded reads, atomic writes, concurrent
// modification detection, and sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors, matched with errors.Is by callers.
var (
	// ErrNilFileInfo remembers a caller passing nil metadata.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound wraps a missing file.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied wraps an access failure.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory flags a path that names a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo is a point-in-time snapshot of a file's observable state.
// Comparing a fresh snapshot against a stored one detects edits made by
// other processes between read and write.
type FileInfo struct {
	// Path is the path the snapshot was taken from.
	Path string

	// Mode holds the permission and mode bits.
	Mode os.FileMode

	// ModTime is the modification time at snapshot.
	ModTime time.Time

	// Size is the content length in bytes.
	Size int64

	// Hash is the SHA-256 of the content.
	Hash [32]byte
}

// cancelled reports a wrapped context error when ctx is already done.
func cancelled(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}

// ReadFile loads the full content of a regular file together with a
// FileInfo snapshot for later modification checks.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := cancelled(ctx, "read file"); err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	case err != nil:
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	case stat.IsDir():
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// metaChanged reports whether mod time or size differ from the snapshot.
func metaChanged(stat os.FileInfo, info *FileInfo) bool {
	return !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size
}

// CheckModified reports whether the file changed since the snapshot was
// taken. A deleted file counts as modified.
//
// The comparison is two-tier: mod time and size first, then a full content
// re-hash. The second tier catches same-size in-place edits that a touch
// utility or fast successive writes can hide from the first.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := cancelled(ctx, "check modified"); err != nil {
		return false, err
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	if metaChanged(stat, info) {
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}

	return sha256.Sum256(content) != info.Hash, nil
}

// CheckModifiedQuick is CheckModified without the content re-hash.
// Cheaper, but a same-size same-mtime rewrite slips past it.
func CheckModifiedQuick(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := cancelled(ctx, "check modified"); err != nil {
		return false, err
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	return metaChanged(stat, info), nil
}
