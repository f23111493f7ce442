package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode selects where backups of rewritten files are kept.
type BackupMode string

const (
	// BackupModeSidecar keeps a copy next to the original under BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups entirely.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file's path to form its sidecar backup path.
const BackupSuffix = ".gopystyle.bak"

// BackupConfig controls whether and how backups are written before a fix
// pass rewrites a file.
type BackupConfig struct {
	// Enabled turns backup creation on.
	Enabled bool

	// Mode selects the backup placement strategy.
	Mode BackupMode
}

// DefaultBackupConfig disables backups and selects sidecar placement for
// when they are turned on.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath derives the backup location for path under the given mode.
// It returns "" when the mode produces no backup. Unrecognized modes fall
// back to sidecar placement.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its backup location, reporting
// whether a copy was made.
//
// An existing backup is never overwritten. The first run of a fix session
// captures the pristine content and later runs leave that capture alone,
// so the user can always get back to what they started with.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}
	if err := cancelled(ctx, "create backup"); err != nil {
		return false, err
	}

	bak := BackupPath(path, cfg.Mode)
	if bak == "" {
		return false, nil
	}

	if _, err := os.Stat(bak); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", bak, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing to preserve.
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	// The backup carries the original's permission bits.
	if err := WriteAtomic(ctx, bak, data, fi.Mode()); err != nil {
		return false, fmt.Errorf("write backup %s: %w", bak, err)
	}
	return true, nil
}

// RestoreBackup copies a backup over its original, reporting whether a
// restore happened. A missing backup is not an error.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	if err := cancelled(ctx, "restore backup"); err != nil {
		return false, err
	}

	bak := BackupPath(path, mode)
	if bak == "" {
		return false, nil
	}

	data, err := os.ReadFile(bak)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup %s: %w", bak, err)
	}

	fi, err := os.Stat(bak)
	if err != nil {
		return false, fmt.Errorf("stat backup %s: %w", bak, err)
	}

	if err := WriteAtomic(ctx, path, data, fi.Mode()); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	return true, nil
}

// RemoveBackup deletes the backup for path, reporting whether one existed.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	bak := BackupPath(path, mode)
	if bak == "" {
		return false, nil
	}

	if err := os.Remove(bak); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove backup %s: %w", bak, err)
	}
	return true, nil
}

// BackupExists reports whether a backup is present for path.
func BackupExists(path string, mode BackupMode) bool {
	bak := BackupPath(path, mode)
	if bak == "" {
		return false
	}
	_, err := os.Stat(bak)
	return err == nil
}
