package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// descWidth caps the width of wrapped rule descriptions.
const descWidth = 70

// TemplateOptions selects what GenerateTemplate emits.
type TemplateOptions struct {
	// Full documents every rule instead of emitting the short starter file.
	Full bool

	// Format selects "yaml" or "json" output.
	Format string

	// IncludeRules restricts the full template to the given rule IDs.
	IncludeRules []string
}

// RuleInfo carries the rule metadata shown in generated templates.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider returns the metadata for all registered rules.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is installed by the rules package so that
// templates describe the live registry. The config package cannot read
// the registry itself without creating an import cycle.
//
//nolint:gochecknoglobals // Extension point wired during rule registration.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate renders a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer
	if opts.Full {
		writeFullTemplate(&buf, opts)
	} else {
		writeMinimalTemplate(&buf)
	}

	if opts.Format == "json" {
		return templateAsJSON(buf.Bytes())
	}
	return buf.Bytes(), nil
}

func writeMinimalTemplate(buf *bytes.Buffer) {
	buf.WriteString(`# gopystyle configuration
# See: https://github.com/yaklabco/gopystyle

# Severity for rules that do not set their own: error, warning, or info
severity_default: warning

# Apply auto-corrections while checking
# fix: false

# Parallel analysis workers (0 picks one per CPU core)
# jobs: 0

# Glob patterns for paths that are never checked
# ignore:
#   - "venv/**"
#   - "**/__pycache__/**"

# Per-rule settings
# rules:
#   E501:
#     enabled: true
#     options:
#       max_length: 100
#   E111:
#     options:
#       indent_size: 4
`)
}

func writeFullTemplate(buf *bytes.Buffer, opts TemplateOptions) {
	buf.WriteString(`# gopystyle configuration (full)
# See: https://github.com/yaklabco/gopystyle
#
# Every available rule is listed below with its default settings.
# Uncomment and adjust what you need.

# Severity for rules that do not set their own: error, warning, or info
severity_default: warning

# Apply auto-corrections while checking
fix: false

# Preview corrections without touching files (requires fix: true)
dry_run: false

# Parallel analysis workers (0 picks one per CPU core)
jobs: 0

# Output format: text, table, json, report, sarif, diff, or summary
format: text

# Backups written before auto-fix rewrites a file
backups:
  enabled: true
  mode: sidecar

# Glob patterns for paths that are never checked
ignore:
  - "venv/**"
  - ".venv/**"
  - "**/__pycache__/**"

# Rules to force on, overriding their defaults
# enable_rules:
#   - E111
#   - E225

# Rules to switch off
# disable_rules:
#   - E501

# Rules allowed to auto-fix (empty means all fixable rules)
# fix_rules:
#   - W291
#   - I100

# Per-rule settings
rules:
`)

	rules := ruleInfos()
	if len(opts.IncludeRules) > 0 {
		rules = slices.DeleteFunc(rules, func(info RuleInfo) bool {
			return !slices.Contains(opts.IncludeRules, info.ID)
		})
	}
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	for _, info := range rules {
		writeRuleBlock(buf, info)
	}
}

func writeRuleBlock(buf *bytes.Buffer, info RuleInfo) {
	fmt.Fprintf(buf, "\n  # %s: %s\n", info.ID, info.Name)
	for _, line := range wrapComment(info.Description, descWidth) {
		fmt.Fprintf(buf, "  # %s\n", line)
	}
	if len(info.Tags) > 0 {
		fmt.Fprintf(buf, "  # Tags: %s\n", strings.Join(info.Tags, ", "))
	}
	if info.CanFix {
		buf.WriteString("  # Auto-fix: yes\n")
	}
	fmt.Fprintf(buf, "  %s:\n", info.ID)
	fmt.Fprintf(buf, "    enabled: %t\n", info.Enabled)
	fmt.Fprintf(buf, "    severity: %s\n", info.Severity)
	buf.WriteString("    # options:\n    #   key: value\n")
}

// ruleInfos returns live registry metadata when a provider is installed
// and a static snapshot of the built-in rules otherwise.
func ruleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}
	return builtinRuleInfos()
}

func builtinRuleInfos() []RuleInfo {
	return []RuleInfo{
		{
			ID: "E111", Name: "indentation", Enabled: true, Severity: SeverityWarning,
			Description: "Indentation is not a multiple of the configured indent size",
			Tags:        []string{"indentation"}, CanFix: true,
		},
		{
			ID: "E225", Name: "missing-whitespace-around-operator", Enabled: true, Severity: SeverityWarning,
			Description: "Operators should be surrounded by whitespace",
			Tags:        []string{"whitespace", "operators"}, CanFix: true,
		},
		{
			ID: "E501", Name: "line-too-long", Enabled: true, Severity: SeverityWarning,
			Description: "Line length exceeds the configured maximum",
			Tags:        []string{"line_length"},
		},
		{
			ID: "I100", Name: "import-order", Enabled: true, Severity: SeverityWarning,
			Description: "Import statements should be sorted alphabetically",
			Tags:        []string{"imports"}, CanFix: true,
		},
		{
			ID: "N801", Name: "class-naming", Enabled: true, Severity: SeverityWarning,
			Description: "Class names should use CapWords convention",
			Tags:        []string{"naming", "classes"}, CanFix: true,
		},
		{
			ID: "N802", Name: "function-naming", Enabled: true, Severity: SeverityWarning,
			Description: "Function names should be lowercase with underscores",
			Tags:        []string{"naming", "functions"}, CanFix: true,
		},
		{
			ID: "W291", Name: "trailing-whitespace", Enabled: true, Severity: SeverityWarning,
			Description: "Trailing whitespace at the end of lines",
			Tags:        []string{"whitespace"}, CanFix: true,
		},
	}
}

// wrapComment splits text into lines no wider than maxWidth, breaking on
// word boundaries. A word longer than maxWidth gets a line of its own.
func wrapComment(text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := []string{words[0]}
	for _, word := range words[1:] {
		last := lines[len(lines)-1]
		if len(last)+1+len(word) <= maxWidth {
			lines[len(lines)-1] = last + " " + word
		} else {
			lines = append(lines, word)
		}
	}
	return lines
}

// templateAsJSON re-encodes the YAML template as indented JSON.
// Comments do not survive the conversion.
func templateAsJSON(yamlDoc []byte) ([]byte, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(yamlDoc, &tree); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	return out, nil
}
