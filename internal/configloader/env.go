package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gopystyle/pkg/config"
)

// envVarPrefix starts every gopystyle environment variable.
const envVarPrefix = "GOPYSTYLE_"

// envVar couples one GOPYSTYLE_* override with its help text.
type envVar struct {
	help  string
	apply func(cfg *config.Config, value string) error
}

// envVars maps each variable suffix to its parser, so the applied overrides
// and the documented ones can never drift apart.
//
//nolint:gochecknoglobals // Populated once, never written after.
var envVars = map[string]envVar{
	"SEVERITY_DEFAULT": {
		help:  "Default severity: error, warning, or info",
		apply: func(cfg *config.Config, v string) error { cfg.SeverityDefault = v; return nil },
	},
	"FORMAT": {
		help:  "Output format: text, table, json, report, sarif, diff, or summary",
		apply: func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil },
	},
	"RULE_FORMAT": {
		help:  "Rule identifier style: id, name, or combined",
		apply: func(cfg *config.Config, v string) error { cfg.RuleFormat = config.RuleFormat(v); return nil },
	},
	"FIX": {
		help:  "Enable auto-fix: true or false",
		apply: setBool(func(cfg *config.Config, v bool) { cfg.Fix = v }),
	},
	"DRY_RUN": {
		help:  "Dry-run mode: true or false",
		apply: setBool(func(cfg *config.Config, v bool) { cfg.DryRun = v }),
	},
	"JOBS": {
		help: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			cfg.Jobs = n
			return nil
		},
	},
	"BACKUPS_ENABLED": {
		help:  "Enable backups when fixing: true or false",
		apply: setBool(func(cfg *config.Config, v bool) { cfg.Backups.Enabled = v }),
	},
	"BACKUPS_MODE": {
		help:  "Backup mode: sidecar or none",
		apply: func(cfg *config.Config, v string) error { cfg.Backups.Mode = v; return nil },
	},
	"NO_BACKUPS": {
		help:  "Disable backups: true or false",
		apply: setBool(func(cfg *config.Config, v bool) { cfg.NoBackups = v }),
	},
	"IGNORE": {
		help:  "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, v string) error { cfg.Ignore = splitAndTrim(v); return nil },
	},
}

// LoadFromEnv folds GOPYSTYLE_* environment variables into cfg. Unset and
// empty variables are skipped; values are validated later with the rest of
// the merged configuration.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, v := range envVars {
		name := envVarPrefix + suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := v.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported environment variable with its
// description, keyed by full variable name.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		out[envVarPrefix+suffix] = v.help
	}
	return out
}

// setBool adapts a boolean field setter into an envVar apply function.
func setBool(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(cfg, b)
		return nil
	}
}

// splitAndTrim splits a comma-separated value, trimming whitespace and
// dropping empty elements.
func splitAndTrim(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
