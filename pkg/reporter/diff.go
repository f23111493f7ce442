package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gopystyle/internal/ui/pretty"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

// DiffReporter renders dry-run results as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	w      io.Writer
}

// NewDiffReporter builds a reporter that prints the unified diff of
// every pending fix instead of the diagnostics themselves.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		w:      opts.Writer,
	}
}

// Report implements Reporter. The count it returns is the number of
// files with pending changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var changed, added, removed int
	for idx := range result.Files {
		file := &result.Files[idx]
		if file.Error != nil {
			fmt.Fprintf(r.w, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		diff := fileDiff(file)
		if diff == nil {
			continue
		}

		changed++
		added += diff.Additions
		removed += diff.Deletions
		r.writeDiff(diff)
	}

	if changed > 0 && r.opts.ShowSummary {
		r.writeSummary(changed, added, removed)
	}

	return changed, nil
}

// fileDiff returns the outcome's diff, or nil when the file was not
// going to change.
func fileDiff(file *runner.FileOutcome) *fix.Diff {
	if file.Result == nil || file.Result.Diff == nil {
		return nil
	}
	if !file.Result.Diff.HasChanges() {
		return nil
	}
	return file.Result.Diff
}

// writeDiff renders one file's diff with its own git-style header.
func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	oldPath := "a/" + relativePath(diff.Path)
	newPath := "b/" + relativePath(diff.Path)

	fmt.Fprintln(r.w, r.styles.DiffHeader.Render("diff --git "+oldPath+" "+newPath))
	fmt.Fprintln(r.w, r.styles.DiffRemove.Render("--- "+oldPath))
	fmt.Fprintln(r.w, r.styles.DiffAdd.Render("+++ "+newPath))

	// diff.String() carries its own ---/+++ header pair; those lines are
	// replaced by the styled ones above.
	for _, line := range strings.Split(diff.String(), "\n") {
		if line == "" || strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") {
			continue
		}
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.w)
}

// relativePath rewrites an absolute path relative to the working
// directory, falling back to the basename when that climbs more than
// two levels up.
func relativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return filepath.Base(path)
	}
	rel, relErr := filepath.Rel(wd, path)
	if relErr != nil || strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return rel
}

func (r *DiffReporter) writeDiffLine(line string) {
	style := r.styles.DiffContext
	switch {
	case strings.HasPrefix(line, "@@"):
		style = r.styles.DiffHunk
	case strings.HasPrefix(line, "+"):
		style = r.styles.DiffAdd
	case strings.HasPrefix(line, "-"):
		style = r.styles.DiffRemove
	}

	fmt.Fprintln(r.w, style.Render(line))
}

// writeSummary closes the output with a git-shortstat style line.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{
		fmt.Sprintf("%d %s changed", files, pluralize(files, "file", "files")),
	}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pluralize(additions, "insertion", "insertions")),
		))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralize(deletions, "deletion", "deletions")),
		))
	}

	fmt.Fprintln(r.w, strings.Join(parts, ", "))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
