// Package configloader resolves the effective configuration for a run.
// It discovers config files in XDG locations and the project tree, merges
// them with environment variables and CLI flags, validates the result, and
// offers migration from pycodestyle and flake8 configs.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
)

// configFileMode keeps written config files world-readable.
const configFileMode = 0644

// migratedConfigHeader sits atop configs produced by auto-migration.
const migratedConfigHeader = "# gopystyle configuration\n# See: https://github.com/yaklabco/gopystyle"

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath names a config file given on the command line.
	ExplicitPath string

	// The Ignore flags drop individual layers from the merge. Tests use
	// them to shield themselves from host configuration.
	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// IgnoreLegacyConfig skips pycodestyle/flake8 detection and migration.
	IgnoreLegacyConfig bool

	// NonInteractive suppresses the migration prompt, as in CI.
	NonInteractive bool

	// CLIConfig carries settings from command-line flags. It outranks
	// every other source.
	CLIConfig *config.Config
}

// LoadResult carries the merged configuration and its provenance.
type LoadResult struct {
	// Config is the fully merged configuration.
	Config *config.Config

	// Paths holds the discovered configuration file locations.
	Paths *ConfigPaths

	// LoadedFrom lists the files actually merged, weakest first.
	LoadedFrom []string

	// Warnings collects non-fatal issues hit along the way.
	Warnings []string

	// MigrationPerformed reports that a legacy config was converted.
	MigrationPerformed bool
}

// Load resolves the effective configuration by merging every source.
// From strongest to weakest:
//
//	CLI flags (opts.CLIConfig)
//	environment variables (GOPYSTYLE_*)
//	the file named by --config (opts.ExplicitPath)
//	project config (.gopystyle.yml, searched upward)
//	user config ($XDG_CONFIG_HOME/gopystyle/config.yaml)
//	system config (/etc/gopystyle/config.yaml)
//	built-in defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	if !opts.IgnoreLegacyConfig {
		migrated, err := maybeMigrateLegacy(paths, result, opts)
		if err != nil {
			return nil, err
		}
		if migrated {
			// The freshly written .gopystyle.yml becomes the project config.
			if paths, err = DiscoverPaths(ctx, workDir); err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			paths.Explicit = opts.ExplicitPath
			result.Paths = paths
		}
	}

	cfg := config.NewConfig()

	// File layers from weakest to strongest. The file named by --config
	// outranks anything discovered on disk.
	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", opts.ExplicitPath, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		// Check each layer on its own so errors name the offending file.
		// Warnings wait for the final pass; rule keys are not canonical yet.
		if v := ValidateWithFile(fileCfg, layer.path); !v.Valid() {
			return nil, &v.Errors[0]
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// Config files may address rules by name or alias; fold those keys
	// onto canonical IDs before validating.
	canonicalizeRuleKeys(cfg, lint.DefaultRegistry, result)

	final := Validate(cfg)
	if !final.Valid() {
		return nil, &final.Errors[0]
	}
	for _, w := range final.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// readConfigFile loads one YAML config layer from disk.
func readConfigFile(path string) (*config.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return config.FromYAML(raw)
}

// maybeMigrateLegacy offers to convert a pycodestyle or flake8 config when
// the project has no native one yet. It reports true when a .gopystyle.yml
// was written and paths should be rediscovered.
func maybeMigrateLegacy(paths *ConfigPaths, result *LoadResult, opts LoadOptions) (bool, error) {
	switch {
	case paths.Legacy == "":
		return false, nil
	case paths.Project != "":
		// The native config wins; just point out the leftover.
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("both .gopystyle.yml and %s exist; using .gopystyle.yml", paths.Legacy))
		return false, nil
	case !CanMigrate(paths.Legacy):
		result.Warnings = append(result.Warnings, MigrationWarning(paths.Legacy))
		return false, nil
	case opts.NonInteractive || !stdinIsTerminal():
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s but no .gopystyle.yml; run 'gopystyle migrate' to convert", paths.Legacy))
		return false, nil
	}

	ok, err := confirmMigration(paths.Legacy)
	if err != nil || !ok {
		return false, err
	}

	converted, err := ConvertLegacyConfig(paths.Legacy)
	if err != nil {
		return false, fmt.Errorf("convert legacy config: %w", err)
	}
	result.Warnings = append(result.Warnings, converted.Warnings...)

	const outputPath = ".gopystyle.yml"
	if err := writeMigratedConfig(converted.Config, outputPath); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated %s to %s; you can now remove the old settings", paths.Legacy, outputPath))

	return true, nil
}

// confirmMigration asks on stdout whether the legacy config should be
// converted. Enter defaults to yes.
func confirmMigration(legacyPath string) (bool, error) {
	prompt := "Found " + legacyPath + " but no .gopystyle.yml\nConvert to gopystyle format? [Y/n] "
	if _, err := os.Stdout.WriteString(prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(response)) {
	case "", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func writeMigratedConfig(cfg *config.Config, path string) error {
	content, err := cfg.ToYAMLWithHeader(migratedConfigHeader)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, content, configFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// canonicalizeRuleKeys rewrites the keys of cfg.Rules onto canonical rule
// IDs so later stages only ever see one key per rule. Unknown keys are kept
// as-is for validation to report. When two keys resolve to the same rule
// the map iteration order decides which value survives, so a warning is
// recorded either way.
func canonicalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	canonical := make(map[string]config.RuleConfig, len(cfg.Rules))
	claimedBy := make(map[string]string, len(cfg.Rules))

	for key, ruleCfg := range cfg.Rules {
		id, _, known := registry.Resolve(key)
		if !known {
			canonical[key] = ruleCfg
			continue
		}
		if prev, dup := claimedBy[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate configuration for %s: %q and %q; the last value wins",
					id, prev, key))
		}
		claimedBy[id] = key
		canonical[id] = ruleCfg
	}

	cfg.Rules = canonical
}
