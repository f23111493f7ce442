package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
)

// The SARIF document shape, trimmed to the subset this reporter fills
// in. Field names and tags follow the 2.1.0 schema.

// sarifOutput is the root SARIF document.
type sarifOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

// sarifRun is a single analysis run.
type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

// sarifTool identifies the analysis tool.
type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

// sarifDriver carries tool metadata and the rules it ran.
type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

// sarifRule describes one lint rule.
type sarifRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription sarifMultiformatText `json:"shortDescription,omitempty"`
	DefaultConfig    *sarifRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// sarifMultiformatText holds text in multiple formats.
type sarifMultiformatText struct {
	Text string `json:"text"`
}

// sarifRuleConfig holds the rule's default level.
type sarifRuleConfig struct {
	Level string `json:"level"`
}

// sarifResult is one reported diagnostic.
type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

// sarifMessage holds the result message.
type sarifMessage struct {
	Text string `json:"text"`
}

// sarifLocation points at a code location.
type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

// sarifPhysicalLocation combines file path and region.
type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

// sarifArtifactLocation holds the file URI.
type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

// sarifRegion is the affected text region.
type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// sarifFix is a proposed fix.
type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

// sarifArtifactChange groups replacements within one file.
type sarifArtifactChange struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Replacements     []sarifReplacement    `json:"replacements"`
}

// sarifReplacement is one text replacement.
type sarifReplacement struct {
	DeletedRegion   sarifRegion           `json:"deletedRegion"`
	InsertedContent *sarifInsertedContent `json:"insertedContent,omitempty"`
}

// sarifInsertedContent holds the replacement text.
type sarifInsertedContent struct {
	Text string `json:"text"`
}

// SARIFReporter emits SARIF 2.1.0 for code-scanning integrations.
type SARIFReporter struct {
	opts Options
	w    io.Writer
}

// NewSARIFReporter builds a reporter that emits one SARIF 2.1.0 run
// covering all checked files.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		w:    opts.Writer,
	}
}

// Report implements Reporter. The returned count is the number of
// results in the emitted run.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	doc := r.buildOutput(result)

	enc := json.NewEncoder(r.w)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("write SARIF report: %w", err)
	}

	return len(doc.Runs[0].Results), nil
}

// buildOutput assembles a single-run document. Rules and Results stay
// non-nil so they serialize as [] rather than null.
func (r *SARIFReporter) buildOutput(result *runner.Result) *sarifOutput {
	doc := &sarifOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: toolDriver()},
			Results: []sarifResult{},
		}},
	}
	if result == nil {
		return doc
	}

	run := &doc.Runs[0]
	seen := map[string]bool{}

	for idx := range result.Files {
		file := &result.Files[idx]
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		for j := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[j]

			// Each rule is declared once, from its first diagnostic.
			if !seen[diag.RuleID] {
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRuleFor(diag))
				seen[diag.RuleID] = true
			}

			run.Results = append(run.Results, sarifResultFor(diag))
		}
	}

	return doc
}

func toolDriver() sarifDriver {
	return sarifDriver{
		Name:           "gopystyle",
		Version:        "0.1.0",
		InformationURI: "https://github.com/yaklabco/gopystyle",
		Rules:          []sarifRule{},
	}
}

func sarifRuleFor(diag *lint.Diagnostic) sarifRule {
	return sarifRule{
		ID:   diag.RuleID,
		Name: diag.RuleName,
		ShortDescription: sarifMultiformatText{
			Text: diag.Message,
		},
		DefaultConfig: &sarifRuleConfig{
			Level: severityToSARIFLevel(diag.Severity),
		},
	}
}

func sarifResultFor(diag *lint.Diagnostic) sarifResult {
	result := sarifResult{
		RuleID: diag.RuleID,
		Level:  severityToSARIFLevel(diag.Severity),
		Message: sarifMessage{
			Text: diag.Message,
		},
		Locations: []sarifLocation{{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{
					URI: diag.FilePath,
				},
				Region: sarifRegion{
					StartLine:   diag.StartLine,
					StartColumn: diag.StartColumn,
					EndLine:     diag.EndLine,
					EndColumn:   diag.EndColumn,
				},
			},
		}},
	}

	if len(diag.FixEdits) > 0 && diag.Suggestion != "" {
		result.Fixes = append(result.Fixes, sarifFixFor(diag))
	}

	return result
}

func sarifFixFor(diag *lint.Diagnostic) sarifFix {
	fx := sarifFix{
		Description: sarifMessage{
			Text: diag.Suggestion,
		},
		ArtifactChanges: make([]sarifArtifactChange, 0, len(diag.FixEdits)),
	}

	for _, edit := range diag.FixEdits {
		fx.ArtifactChanges = append(fx.ArtifactChanges, sarifArtifactChange{
			ArtifactLocation: sarifArtifactLocation{
				URI: diag.FilePath,
			},
			Replacements: []sarifReplacement{{
				// Edits are byte-offset based, so only the start line
				// maps onto the deleted region.
				DeletedRegion: sarifRegion{
					StartLine: diag.StartLine,
				},
				InsertedContent: &sarifInsertedContent{
					Text: edit.NewText,
				},
			}},
		})
	}

	return fx
}

// severityToSARIFLevel maps severities onto SARIF levels.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityWarning:
		return "warning"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
