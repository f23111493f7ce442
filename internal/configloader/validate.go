package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.E501.severity").
	Field string

	// Value is what the user wrote there.
	Value any

	// Message explains what is wrong with it.
	Message string

	// FilePath names the config file containing the error, when known.
	FilePath string

	// Line is the line number in that file, when known.
	Line int
}

// Error renders "file:line: field: message", dropping the parts that are
// not known.
func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.FilePath != "" {
		b.WriteString(e.FilePath)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects everything Validate found.
type ValidationResult struct {
	// Errors prevent the configuration from loading.
	Errors []ValidationError

	// Warnings flag suspect values that do not block loading, such as
	// unknown rule keys.
	Warnings []ValidationError
}

// Valid reports whether the configuration can be used.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether any non-fatal issues were found.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages flattens errors and warnings into printable lines.
func (r *ValidationResult) AllMessages() []string {
	out := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		out = append(out, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		out = append(out, "warning: "+w.Error())
	}
	return out
}

// Validate checks every field of a configuration. A nil config is trivially
// valid.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	fail := func(field string, value any, message string) {
		result.Errors = append(result.Errors, ValidationError{Field: field, Value: value, Message: message})
	}
	warn := func(field string, value any, message string) {
		result.Warnings = append(result.Warnings, ValidationError{Field: field, Value: value, Message: message})
	}

	if cfg.SeverityDefault != "" && !IsValidSeverity(cfg.SeverityDefault) {
		fail("severity_default", cfg.SeverityDefault,
			fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault))
	}
	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		fail("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, table, json, report, sarif, diff, summary", cfg.Format))
	}
	if cfg.RuleFormat != "" && !IsValidRuleFormat(cfg.RuleFormat) {
		fail("rule_format", cfg.RuleFormat,
			fmt.Sprintf("invalid rule format %q; must be one of: id, name, combined", cfg.RuleFormat))
	}
	if cfg.Jobs < 0 {
		fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !IsValidBackupMode(cfg.Backups.Mode) {
		fail("backups.mode", cfg.Backups.Mode,
			fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode))
	}

	// Rule keys may still be names or aliases at this point, so unknown
	// keys only warn. Severities inside rule blocks are hard errors.
	for ruleID, ruleCfg := range cfg.Rules {
		if _, known := lint.DefaultRegistry.Get(ruleID); !known {
			warn("rules."+ruleID, ruleID, fmt.Sprintf("unknown rule %q; it will be ignored", ruleID))
		}
		if ruleCfg.Severity != nil && !IsValidSeverity(*ruleCfg.Severity) {
			fail("rules."+ruleID+".severity", *ruleCfg.Severity,
				fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity))
		}
	}

	// filepath.Match errors only on malformed patterns, which is exactly
	// the check wanted here.
	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			fail(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}

	return result
}

// ValidateWithFile runs Validate and stamps every finding with the file it
// came from.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	stamp := func(findings []ValidationError) {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	stamp(result.Errors)
	stamp(result.Warnings)
	return result
}

// IsValidSeverity reports whether s names a known severity.
func IsValidSeverity(s string) bool {
	switch config.Severity(s) {
	case config.SeverityError, config.SeverityWarning, config.SeverityInfo:
		return true
	default:
		return false
	}
}

// IsValidFormat reports whether f names a known output format.
func IsValidFormat(f config.OutputFormat) bool {
	switch f {
	case config.FormatText, config.FormatTable, config.FormatJSON,
		config.FormatReport, config.FormatSARIF, config.FormatDiff, config.FormatSummary:
		return true
	default:
		return false
	}
}

// IsValidRuleFormat reports whether f names a known rule identifier format.
func IsValidRuleFormat(f config.RuleFormat) bool {
	switch f {
	case config.RuleFormatID, config.RuleFormatName, config.RuleFormatCombined:
		return true
	default:
		return false
	}
}

// IsValidBackupMode reports whether mode names a known backup strategy.
func IsValidBackupMode(mode string) bool {
	return mode == "sidecar" || mode == "none"
}
