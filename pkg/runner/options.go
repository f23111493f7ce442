// Package runner fans the lint pipeline out across many files.
package runner

import "github.com/yaklabco/gopystyle/pkg/config"

// Options describes one multi-file run.
type Options struct {
	// Paths holds the files and directories named on the command line.
	// Empty means the current working directory.
	Paths []string

	// WorkingDir anchors relative Paths. Empty means the process working
	// directory.
	WorkingDir string

	// Extensions names the suffixes treated as Python source, lowercase
	// with the leading dot. Empty means DefaultExtensions(). Extensionless
	// files are sniffed for a Python shebang either way.
	Extensions []string

	// IncludeGlobs narrows the walk to matching paths, relative to
	// WorkingDir. Empty keeps everything that matches Extensions.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories. Ignore rules from
	// the config and from --ignore both land here.
	ExcludeGlobs []string

	// FollowSymlinks lets the walk descend into directory symlinks.
	FollowSymlinks bool

	// Jobs caps concurrent workers. Zero or negative picks runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for the run.
	Config *config.Config
}

// DefaultExtensions returns the suffixes recognized as Python source.
func DefaultExtensions() []string {
	return []string{".py", ".pyi", ".pyw"}
}

func (o Options) extensionsOrDefault() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) pathsOrDefault() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
