package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/yaklabco/gopystyle/pkg/config"
)

// MigrationResult contains the result of converting a legacy lint config.
type MigrationResult struct {
	// Config is the converted gopystyle configuration.
	Config *config.Config

	// Warnings lists settings that could not be carried over cleanly.
	Warnings []string

	// SourcePath is the path to the original config file.
	SourcePath string

	// Section is the INI section the settings were read from.
	Section string
}

// legacySections are the INI section names searched for lint settings,
// in order of preference.
//
//nolint:gochecknoglobals // Fixed search order.
var legacySections = []string{"pycodestyle", "pep8", "flake8"}

// runtimeOptions are legacy keys that control how the tool runs rather than
// what it checks. They have no equivalent in a config file here.
//
//nolint:gochecknoglobals // Static key set.
var runtimeOptions = map[string]bool{
	"count":        true,
	"statistics":   true,
	"quiet":        true,
	"verbose":      true,
	"show-source":  true,
	"show-pep8":    true,
	"format":       true,
	"jobs":         true,
	"hang-closing": true,
	"disable-noqa": true,
	"benchmark":    true,
}

// ConvertLegacyConfig converts a pycodestyle or flake8 INI config file to
// gopystyle format. Returns the converted config, any warnings, and an error
// if conversion failed.
func ConvertLegacyConfig(path string) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: path,
	}

	// TOML configs (pyproject.toml) use another tool's schema
	if IsTOMLConfig(path) {
		return nil, fmt.Errorf("cannot convert TOML config file %q; please create a gopystyle config manually", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// Python configs often use configparser-style indented continuation lines
	loadOpts := ini.LoadOptions{AllowPythonMultilineValues: true}
	iniFile, err := ini.LoadSources(loadOpts, content)
	if err != nil {
		return nil, fmt.Errorf("parse INI: %w", err)
	}

	section, sectionName := findLintSection(iniFile)
	if section == nil {
		return nil, fmt.Errorf("no [pycodestyle], [pep8], or [flake8] section found in %q", path)
	}
	result.Section = sectionName

	cfg := config.NewConfig()

	for _, key := range section.Keys() {
		processLegacyKey(cfg, key.Name(), key.String(), result)
	}

	result.Config = cfg
	return result, nil
}

// findLintSection returns the first recognized lint section in the file.
// Dedicated config files (.pycodestyle, .pep8) sometimes omit the section
// header, in which case their keys land in the INI default section.
func findLintSection(iniFile *ini.File) (*ini.Section, string) {
	for _, name := range legacySections {
		if section, err := iniFile.GetSection(name); err == nil {
			return section, name
		}
	}

	defaultSection := iniFile.Section(ini.DefaultSection)
	if len(defaultSection.Keys()) > 0 {
		return defaultSection, ini.DefaultSection
	}

	return nil, ""
}

// processLegacyKey processes a single key from a legacy config section.
func processLegacyKey(cfg *config.Config, key, value string, result *MigrationResult) {
	normalized := normalizeLegacyKey(key)

	switch normalized {
	case "max-line-length":
		applyIntOption(cfg, "E501", "max_length", key, value, result)
	case "indent-size":
		applyIntOption(cfg, "E111", "indent_size", key, value, result)
	case "ignore", "extend-ignore":
		disableCodes(cfg, value, result)
	case "select", "extend-select":
		selectCodes(cfg, value, result)
	case "exclude", "extend-exclude":
		cfg.Ignore = append(cfg.Ignore, splitAndTrim(value)...)
	default:
		if runtimeOptions[normalized] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("option %q controls tool behavior, not checks; configure it on the command line", key))
			return
		}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown key %q; skipping", key))
	}
}

// normalizeLegacyKey lowercases a key and unifies underscore and hyphen
// spellings. Legacy configs use both max-line-length and max_line_length.
func normalizeLegacyKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// applyIntOption parses an integer value and stores it as a rule option.
func applyIntOption(cfg *config.Config, ruleID, option, key, value string, result *MigrationResult) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("invalid value %q for %s; skipping", value, key))
		return
	}
	setRuleOption(cfg, ruleID, option, parsed)
}

// setRuleOption sets a single option on a rule, preserving any existing
// configuration for that rule.
func setRuleOption(cfg *config.Config, ruleID, option string, value any) {
	ruleCfg := cfg.Rules[ruleID]
	if ruleCfg.Options == nil {
		ruleCfg.Options = make(map[string]any)
	}
	ruleCfg.Options[option] = value
	cfg.Rules[ruleID] = ruleCfg
}

// disableCodes disables every rule addressed by a comma-separated code list.
// Codes may be exact (E501), aliases (W293), or class prefixes (E1, W).
func disableCodes(cfg *config.Config, value string, result *MigrationResult) {
	for _, code := range splitAndTrim(value) {
		ids := expandCode(code)
		if ids == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown code %q in ignore list; skipping", code))
			continue
		}
		for _, id := range ids {
			setRuleEnabled(cfg, id, false)
		}
	}
}

// selectCodes restricts checking to the rules addressed by a comma-separated
// code list. All other known rules are disabled, matching how select works
// in pycodestyle and flake8.
func selectCodes(cfg *config.Config, value string, result *MigrationResult) {
	selected := make(map[string]bool)
	for _, code := range splitAndTrim(value) {
		ids := expandCode(code)
		if ids == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unknown code %q in select list; skipping", code))
			continue
		}
		for _, id := range ids {
			selected[id] = true
		}
	}

	for _, id := range GetAllRuleIDs() {
		setRuleEnabled(cfg, id, selected[id])
		delete(selected, id)
	}

	// Selected codes without a matching rule are kept so that validation
	// can warn about them later.
	for id := range selected {
		setRuleEnabled(cfg, id, true)
	}
}

// setRuleEnabled sets the enabled flag on a rule, preserving any existing
// configuration for that rule.
func setRuleEnabled(cfg *config.Config, ruleID string, enabled bool) {
	ruleCfg := cfg.Rules[ruleID]
	ruleCfg.Enabled = &enabled
	cfg.Rules[ruleID] = ruleCfg
}

// expandCode resolves a single code from a legacy code list into rule IDs.
// Returns nil if the code is neither a known group nor a well-formed code.
func expandCode(code string) []string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil
	}

	if ids := GetGroupRules(trimmed); ids != nil {
		return ids
	}

	if id := NormalizeRuleID(trimmed); id != "" {
		return []string{id}
	}

	return nil
}

// GenerateMigrationHeader builds the comment block written atop a
// migrated config, naming the file it came from.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# gopystyle configuration
# Migrated from: %s
# See: https://github.com/yaklabco/gopystyle
`, filepath.Base(sourcePath))
}

// CanMigrate reports whether path is a config file the migrator understands.
// Only INI-style files convert; TOML (pyproject.toml) and everything else
// need a hand-written replacement.
func CanMigrate(path string) bool {
	return IsINIConfig(path)
}

// MigrationWarning explains why a file cannot be migrated. Migratable
// files produce an empty string.
func MigrationWarning(path string) string {
	switch {
	case IsTOMLConfig(path):
		return fmt.Sprintf("TOML config file (%s) cannot be converted automatically; "+
			"please create a .gopystyle.yml file manually or run 'gopystyle init'", filepath.Base(path))
	case !IsINIConfig(path):
		return fmt.Sprintf("%s is not a recognized pycodestyle or flake8 config file; "+
			"expected an INI-style file such as .flake8, setup.cfg, or tox.ini", filepath.Base(path))
	default:
		return ""
	}
}
