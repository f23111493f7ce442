package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/fsutil"
)

// DefaultMaxFixPasses caps the fix loop. A whole-line rewrite can expose
// issues for the next pass, but a file still unstable after this many
// rounds has rules undoing each other's work.
const DefaultMaxFixPasses = 10

// Sentinel errors the pipeline wraps around lower-level failures so
// callers can branch on the category.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult describes what happened to one file.
type PipelineResult struct {
	// FileResult holds the diagnostics and edits of the final pass.
	*FileResult

	// Path is the processed file.
	Path string

	// OriginalInfo captures the file state at read time.
	OriginalInfo *fsutil.FileInfo

	// Modified reports whether any edit changed the content.
	Modified bool

	// ModifiedContent is the post-fix content, nil when unchanged.
	ModifiedContent []byte

	// Diff is the dry-run preview, nil outside dry-run mode.
	Diff *fix.Diff

	// Skipped and SkipReason record files left alone, for example
	// after a concurrent modification was detected.
	Skipped    bool
	SkipReason string

	// BackupCreated reports whether this run produced a backup.
	BackupCreated bool

	// Written reports whether the file was rewritten on disk.
	Written bool

	// FixPasses counts the fix iterations that applied edits.
	FixPasses int

	// EditsApplied sums the applied edits across all passes.
	EditsApplied int
}

// Summary renders a short status phrase for log lines.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "fixes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls fixing, previewing, and the write-back guards.
type PipelineOptions struct {
	// Fix applies rule edits instead of only reporting them.
	Fix bool

	// DryRun renders a diff instead of touching the file.
	DryRun bool

	// Backup configures sidecar backups before the first write.
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes content when checking for
	// concurrent modification; otherwise mod time and size suffice.
	StrictRaceDetection bool

	// ReParseAfterFix parses the fixed content and abandons the fix
	// when it no longer parses.
	ReParseAfterFix bool

	// MaxFixPasses overrides DefaultMaxFixPasses when positive.
	MaxFixPasses int
}

// DefaultPipelineOptions returns the lint-only configuration with strict
// race detection.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline runs a single file through lint, fix, and guarded write-back.
type Pipeline struct {
	// Engine parses files and executes the registered rules.
	Engine *Engine
}

// NewPipeline wraps an engine in the file-processing pipeline.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile lints one file and, in fix mode, rewrites it safely:
// read and hash, run the fix loop to a fixed point, optionally confirm
// the result still parses, then either render a dry-run diff or write
// back atomically after checking that nobody else touched the file.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, classifyReadError(err)
	}

	result := &PipelineResult{Path: path, OriginalInfo: info}

	content, err := p.runFixLoop(ctx, path, original, cfg, opts, result)
	if err != nil {
		return nil, err
	}
	if !result.Modified {
		return result, nil
	}

	if opts.ReParseAfterFix && !p.stillParses(ctx, path, content, result) {
		return result, nil
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
		return result, nil
	}

	if err := p.persist(ctx, path, content, info, opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessContent is ProcessFile for content already in memory. No file
// is read or written; dry-run mode still produces the diff.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	content, err := p.runFixLoop(ctx, path, originalContent, cfg, opts, result)
	if err != nil {
		return nil, err
	}
	if !result.Modified {
		return result, nil
	}

	if opts.ReParseAfterFix && !p.stillParses(ctx, path, content, result) {
		return result, nil
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
	}
	return result, nil
}

// runFixLoop lints the content and, in fix mode, applies edits and
// re-lints until no edits remain or the pass limit is hit. It records
// the final lint result and pass counters on result and returns the
// final content.
func (p *Pipeline) runFixLoop(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
	result *PipelineResult,
) ([]byte, error) {
	passes := opts.MaxFixPasses
	if passes <= 0 {
		passes = DefaultMaxFixPasses
	}

	var fr *FileResult
	for range passes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		var lintErr error
		fr, lintErr = p.Engine.LintFile(ctx, path, content, cfg)
		if lintErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, lintErr)
		}

		if !opts.Fix || len(fr.Edits) == 0 {
			break
		}

		content = fix.ApplyEdits(content, fr.Edits)
		result.Modified = true
		result.FixPasses++
		result.EditsApplied += len(fr.Edits)
	}

	result.FileResult = fr
	if result.Modified {
		result.ModifiedContent = content
	}
	return content, nil
}

// stillParses re-parses fixed content. A failure marks the result
// skipped and discards the modifications.
func (p *Pipeline) stillParses(ctx context.Context, path string, content []byte, result *PipelineResult) bool {
	if _, err := p.Engine.Parser.Parse(ctx, path, content); err != nil {
		result.Skipped = true
		result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
		result.Modified = false
		result.ModifiedContent = nil
		return false
	}
	return true
}

// persist writes fixed content back to disk: skip when the file changed
// underneath us, back up when configured, then replace atomically.
func (p *Pipeline) persist(
	ctx context.Context,
	path string,
	content []byte,
	info *fsutil.FileInfo,
	opts PipelineOptions,
	result *PipelineResult,
) error {
	raced, err := p.sourceChanged(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return fmt.Errorf("check modified: %w", err)
	}
	if raced {
		result.Skipped = true
		result.SkipReason = "concurrent modification detected"
		return nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, content, info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

// sourceChanged reports whether the file differs from the captured info,
// using the full hash comparison in strict mode.
func (p *Pipeline) sourceChanged(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	if strict {
		return fsutil.CheckModified(ctx, info)
	}
	return fsutil.CheckModifiedQuick(ctx, info)
}

// classifyReadError wraps read failures in the matching sentinel.
func classifyReadError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err carries one of the pipeline
// sentinels.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig maps the user configuration onto the backup
// settings, honoring the --no-backups override.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig derives pipeline behavior from the user
// configuration.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
