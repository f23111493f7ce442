package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ConfigPaths holds the config file locations found by DiscoverPaths.
// Absent files are empty strings.
type ConfigPaths struct {
	// System is the machine-wide config (e.g., /etc/gopystyle/config.yaml).
	System string

	// User is the per-user config (e.g., ~/.config/gopystyle/config.yaml).
	User string

	// Project is the config found by searching upward from the working
	// directory (e.g., ./.gopystyle.yml).
	Project string

	// Explicit is the config named by the --config flag.
	Explicit string

	// Legacy is a pycodestyle or flake8 config eligible for migration.
	Legacy string
}

//nolint:gochecknoglobals // Static name tables.
var (
	// projectConfigNames are the file names accepted as project config, in
	// order of preference.
	projectConfigNames = []string{
		".gopystyle.yml",
		".gopystyle.yaml",
		"gopystyle.yml",
		"gopystyle.yaml",
	}

	// legacyConfigNames are the pycodestyle and flake8 files checked for
	// migration, in order of preference. Dedicated files come before the
	// shared ones so a .flake8 wins over a setup.cfg section.
	legacyConfigNames = []string{
		".flake8",
		".pycodestyle",
		".pep8",
		"setup.cfg",
		"tox.ini",
		"pyproject.toml",
	}
)

// DiscoverPaths locates config files in the standard places: the system
// directory, the XDG user directory, and the project tree upward from
// workDir. It also notes any legacy pycodestyle/flake8 config so the
// caller can offer migration.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findSystemConfig(),
		User:    findUserConfig(),
		Project: project,
		Legacy:  FindLegacyConfig(workDir),
	}, nil
}

func findSystemConfig() string {
	dir := "/etc/gopystyle"
	if runtime.GOOS == "windows" {
		base := os.Getenv("ProgramData")
		if base == "" {
			base = `C:\ProgramData`
		}
		dir = filepath.Join(base, "gopystyle")
	}
	return findConfigInDir(dir)
}

// findUserConfig looks under $XDG_CONFIG_HOME/gopystyle, falling back to
// ~/.config/gopystyle. pycodestyle reads its user config from the same
// base, so the lookup follows XDG on every platform.
func findUserConfig() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return findConfigInDir(filepath.Join(base, "gopystyle"))
}

// findConfigInDir returns the first config file present in dir.
func findConfigInDir(dir string) string {
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks upward from startDir looking for a project
// config file. The search stops at a VCS root, the home directory, or the
// filesystem root; an empty result means none was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		if startDir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// A missing home directory just disables the home boundary check.
	homeDir, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectConfigNames {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		// Configs above a VCS root or the home directory belong to some
		// other project.
		if isVCSRoot(dir) || (homeDir != "" && dir == homeDir) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FindLegacyConfig returns the first pycodestyle or flake8 config in dir
// that actually carries lint settings, or an empty string.
func FindLegacyConfig(dir string) string {
	for _, name := range legacyConfigNames {
		path := filepath.Join(dir, name)
		if fileExists(path) && hasLintSettings(path) {
			return path
		}
	}
	return ""
}

// hasLintSettings reports whether the file carries pycodestyle or flake8
// settings. Dedicated files count by existence alone. Shared files like
// setup.cfg and tox.ini count only when they contain a recognized section,
// so ordinary Python projects do not trigger migration prompts.
func hasLintSettings(path string) bool {
	switch filepath.Base(path) {
	case ".flake8", ".pycodestyle", ".pep8":
		return true
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	text := string(content)

	if filepath.Base(path) == "pyproject.toml" {
		return strings.Contains(text, "[tool.pycodestyle]") || strings.Contains(text, "[tool.flake8]")
	}

	for _, section := range legacySections {
		if strings.Contains(text, "["+section+"]") {
			return true
		}
	}
	return false
}

func isVCSRoot(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsTOMLConfig reports whether path is a TOML file. pyproject.toml settings
// belong to other tools as well, so they are never converted automatically.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}

// IsINIConfig reports whether path looks like an INI-style config.
func IsINIConfig(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cfg", ".ini", ".flake8", ".pep8", ".pycodestyle":
		return true
	default:
		return false
	}
}
