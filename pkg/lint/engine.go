package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// FileResult is the outcome of linting one file.
type FileResult struct {
	// Snapshot holds the parse the rules ran against.
	Snapshot *pysrc.FileSnapshot

	// Diagnostics lists every violation found.
	Diagnostics []Diagnostic

	// Edits holds the validated, non-conflicting edits ready to apply.
	// Empty unless fixing was requested and rules proposed edits.
	Edits []fix.TextEdit

	// SkippedEdits holds edits dropped because they overlapped an
	// earlier edit; the earlier start position wins.
	SkippedEdits []fix.TextEdit

	// EditConflicts reports whether any proposed edit was dropped.
	EditConflicts bool

	// RuleErrors maps rule IDs to their execution failures.
	RuleErrors map[string]error
}

// HasIssues reports whether the file produced any diagnostics.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes reports whether applicable edits remain after validation.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics carrying fix edits.
func (fr *FileResult) FixableCount() int {
	var n int
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			n++
		}
	}
	return n
}

// Engine parses a file once and runs every enabled rule over the
// resulting snapshot.
type Engine struct {
	// Parser produces the FileSnapshot rules operate on.
	Parser Parser

	// Registry holds the available rules.
	Registry *Registry
}

// NewEngine pairs a parser with a rule registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses content and applies the rules enabled by cfg. Rule
// failures land in FileResult.RuleErrors rather than aborting the file;
// only a parse failure or cancellation returns an error.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	var proposed []fix.TextEdit
	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		diags, err := e.applyRule(ctx, rr, snapshot, cfg, path)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
		if rr.AutoFix {
			for idx := range diags {
				proposed = append(proposed, diags[idx].FixEdits...)
			}
		}
	}

	e.settleEdits(result, proposed, len(content))
	return result, nil
}

// applyRule runs one resolved rule and stamps the resolved severity,
// file path, and rule name onto each diagnostic it returns.
func (e *Engine) applyRule(
	ctx context.Context,
	rr ResolvedRule,
	snapshot *pysrc.FileSnapshot,
	cfg *config.Config,
	path string,
) ([]Diagnostic, error) {
	ruleCtx := NewRuleContext(ctx, snapshot, cfg, rr.Config)
	ruleCtx.Registry = e.Registry

	diags, err := rr.Rule.Apply(ruleCtx)
	if err != nil {
		return nil, err
	}

	for idx := range diags {
		diags[idx].Severity = rr.Severity
		if diags[idx].FilePath == "" {
			diags[idx].FilePath = path
		}
		if diags[idx].RuleName == "" {
			diags[idx].RuleName = rr.Rule.Name()
		}
	}
	return diags, nil
}

// settleEdits validates the proposed edits and records the accepted and
// skipped sets. A validation failure, as opposed to a mere overlap,
// clears all edits so a broken rule cannot corrupt the file.
func (e *Engine) settleEdits(result *FileResult, proposed []fix.TextEdit, contentLen int) {
	if len(proposed) == 0 {
		return
	}

	accepted, skipped, _, err := fix.PrepareEditsFiltered(proposed, contentLen)
	if err != nil {
		result.Edits = nil
		result.SkippedEdits = nil
		result.EditConflicts = true
		return
	}

	result.Edits = accepted
	result.SkippedEdits = skipped
	result.EditConflicts = len(skipped) > 0
}
