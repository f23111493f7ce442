// Package config holds the configuration schema shared by the loaders,
// the lint engine, and the CLI. Everything here is plain data; discovery,
// merging, and validation live in internal/configloader.
package config

// Severity grades a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleConfig overrides one rule's defaults. Pointer fields distinguish
// "not set" from an explicit false.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled"`
	Severity *string        `mapstructure:"severity" yaml:"severity"`
	AutoFix  *bool          `mapstructure:"auto_fix" yaml:"auto_fix"`
	Options  map[string]any `mapstructure:"options" yaml:"options"`
}

// BackupsConfig says whether auto-fix keeps a copy of each original file,
// and where.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// OutputFormat names one of the reporter renderings.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatReport  OutputFormat = "report"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat picks how diagnostics identify their rule.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "trailing-whitespace"
	RuleFormatID       RuleFormat = "id"       // "W291"
	RuleFormatCombined RuleFormat = "combined" // "W291/trailing-whitespace"
)

// SummaryOrder arranges the two summary tables.
type SummaryOrder string

const (
	// SummaryOrderRules puts the per-rule table first (the default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles puts the per-file table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid reports whether s names a known table order.
func (s SummaryOrder) IsValid() bool {
	return s == SummaryOrderRules || s == SummaryOrderFiles
}

// Config is the root configuration, merged from file, environment, and
// CLI flags before a run.
type Config struct {
	// SeverityDefault applies to rules that do not set their own severity.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default"`

	// Rules holds per-rule overrides keyed by rule ID.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules"`

	// Ignore lists glob patterns for paths that are never checked.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Backups controls the copies written before auto-fix rewrites a file.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// Execution options. Usually set from CLI flags or GOPYSTYLE_* environment
	// variables, but accepted in config files too. Omitted from serialized
	// output when zero so generated configs stay minimal.

	// Fix applies auto-corrections while checking.
	Fix bool `mapstructure:"fix" yaml:"fix,omitempty"`

	// DryRun previews corrections without touching files.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run,omitempty"`

	// Format selects the reporter.
	Format OutputFormat `mapstructure:"format" yaml:"format,omitempty"`

	// RuleFormat selects how diagnostics identify their rule.
	RuleFormat RuleFormat `mapstructure:"rule_format" yaml:"rule_format,omitempty"`

	// Jobs caps the number of parallel workers. Zero means one per CPU core.
	Jobs int `mapstructure:"jobs" yaml:"jobs,omitempty"`

	// EnableRules forces the listed rules on.
	EnableRules []string `mapstructure:"enable_rules" yaml:"enable_rules,omitempty"`

	// DisableRules switches the listed rules off.
	DisableRules []string `mapstructure:"disable_rules" yaml:"disable_rules,omitempty"`

	// FixRules restricts auto-fixing to the listed rules.
	FixRules []string `mapstructure:"fix_rules" yaml:"fix_rules,omitempty"`

	// NoBackups turns backups off even when the config file enables them.
	// CLI-only: config files use backups.enabled instead.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatID,
	}
}
