package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gopystyle/pkg/langdetect"
)

// sniffLimit bounds how much of an extensionless file is read when
// checking for a Python shebang or body.
const sniffLimit = 1024

// skipDirNames lists directories that never contain lintable Python source.
// Hidden directories are skipped separately.
var skipDirNames = map[string]bool{
	"__pycache__":  true,
	"venv":         true,
	"node_modules": true,
	"CVS":          true,
}

// Discover resolves opts.Paths against the working directory and returns
// every matching Python file as a sorted, deduplicated list of absolute
// paths. Directories are walked recursively; single files only need to
// pass the match criteria.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := workDirAbs(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.extensionsOrDefault()

	var files []string
	for _, input := range opts.pathsOrDefault() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if fileWanted(abs, workDir, extensions, opts) {
				files = append(files, abs)
			}
			continue
		}

		found, err := collectDir(ctx, abs, workDir, extensions, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	// Overlapping inputs can land the same file twice.
	slices.Sort(files)
	return slices.Compact(files), nil
}

// workDirAbs absolutizes workDir, defaulting to the process working
// directory.
func workDirAbs(workDir string) (string, error) {
	if workDir != "" {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return "", fmt.Errorf("resolve absolute path: %w", err)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// collectDir gathers matching Python files under root.
func collectDir(ctx context.Context, root, workDir string, extensions []string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			// Unreadable entries are skipped rather than failing the run.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			if path != root {
				if strings.HasPrefix(entry.Name(), ".") || skipDirectory(entry.Name()) {
					return filepath.SkipDir
				}
			}
			if anyGlobMatches(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, isDir, ok := resolveSymlink(path)
			if !ok {
				return nil
			}
			if isDir {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target rather than the link: WalkDir lstats its
				// root, so this cannot loop back through the same link.
				sub, err := collectDir(ctx, target, workDir, extensions, opts)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
			// A file symlink goes through the normal checks below.
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if fileWanted(path, workDir, extensions, opts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// resolveSymlink follows a symlink and reports its target and whether
// that target is a directory. Broken or unreadable links report ok=false.
func resolveSymlink(path string) (target string, isDir, ok bool) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false, false
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", false, false
	}
	return target, info.IsDir(), true
}

// skipDirectory reports whether a directory name identifies a cache or
// environment directory that should never be walked.
func skipDirectory(name string) bool {
	if skipDirNames[name] {
		return true
	}
	return strings.HasSuffix(name, ".egg-info")
}

// fileWanted decides whether a single file belongs in the run.
func fileWanted(path, workDir string, extensions []string, opts Options) bool {
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		relPath = path
	}

	// Extension first, with shebang sniffing as the fallback for
	// extensionless scripts.
	if !extensionMatches(path, extensions) && !isPythonScript(path) {
		return false
	}

	if anyGlobMatches(relPath, opts.ExcludeGlobs) {
		return false
	}
	if len(opts.IncludeGlobs) > 0 && !anyGlobMatches(relPath, opts.IncludeGlobs) {
		return false
	}
	return true
}

// extensionMatches reports whether path carries one of the extensions.
func extensionMatches(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// isPythonScript reports whether an extensionless file looks like a Python
// script. It reads at most sniffLimit bytes.
func isPythonScript(path string) bool {
	if filepath.Ext(path) != "" {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, sniffLimit))
	if err != nil || len(head) == 0 {
		return false
	}

	return langdetect.IsPython(path, head)
}

// anyGlobMatches reports whether relPath matches at least one glob.
func anyGlobMatches(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return globMatches(relPath, pattern)
	})
}

// globMatches matches a path against a glob pattern, understanding the
// usual forms: "*.py", "tests/**", "**/vendor".
func globMatches(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return deepGlobMatches(path, pattern)
	}

	if ok, err := filepath.Match(pattern, path); err == nil && ok {
		return true
	}
	// A bare pattern like "*.py" should also hit files in subdirectories.
	ok, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && ok
}

// deepGlobMatches handles the recursive "**" forms.
func deepGlobMatches(path, pattern string) bool {
	parts := strings.Split(pattern, "**")
	head, tail := parts[0], parts[1]

	switch {
	case head == "" && len(parts) == 2:
		// "**/name" matches the name anywhere in the tree.
		return matchAnywhere(path, strings.TrimPrefix(tail, "/"))

	case tail == "" || tail == "/":
		// "dir/**" matches the directory itself and everything below it.
		prefix := strings.TrimSuffix(head, "/")
		if prefix == "" {
			return true
		}
		return path == prefix || strings.HasPrefix(path, prefix+"/")

	default:
		// "prefix/**/suffix": anchor both ends, loosely in between.
		prefix := strings.TrimSuffix(head, "/")
		suffix := strings.TrimPrefix(tail, "/")

		if prefix != "" && !strings.HasPrefix(path, prefix) {
			return false
		}
		if suffix != "" && !strings.HasSuffix(path, suffix) {
			ok, err := filepath.Match(suffix, filepath.Base(path))
			if err != nil || !ok {
				return false
			}
		}
		return true
	}
}

// matchAnywhere reports whether name occurs as a suffix, a path segment,
// or a substring of path. An empty name matches everything.
func matchAnywhere(path, name string) bool {
	if name == "" {
		return true
	}
	if strings.HasSuffix(path, name) {
		return true
	}
	for _, segment := range strings.Split(path, "/") {
		if ok, err := filepath.Match(name, segment); err == nil && ok {
			return true
		}
	}
	return strings.Contains(path, name)
}
