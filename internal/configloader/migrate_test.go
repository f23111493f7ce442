package configloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLegacyConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConvertLegacyConfig_Flake8(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, ".flake8", `[flake8]
max-line-length = 120
ignore = W291
exclude = .git,__pycache__
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("result.Config is nil")
	}
	if result.Section != "flake8" {
		t.Errorf("expected section %q, got %q", "flake8", result.Section)
	}

	// Check max-line-length became an E501 option
	e501, ok := result.Config.Rules["E501"]
	if !ok {
		t.Fatal("E501 rule not found in config")
	}
	if e501.Options == nil {
		t.Fatal("E501 options is nil")
	}
	if maxLen, ok := e501.Options["max_length"].(int); !ok || maxLen != 120 {
		t.Errorf("expected max_length 120, got %v", e501.Options["max_length"])
	}

	// Check W291 is disabled
	w291, ok := result.Config.Rules["W291"]
	if !ok {
		t.Fatal("W291 rule not found in config")
	}
	if w291.Enabled == nil || *w291.Enabled {
		t.Error("expected W291 to be disabled")
	}

	// Check exclude patterns landed in Ignore
	found := 0
	for _, pattern := range result.Config.Ignore {
		if pattern == ".git" || pattern == "__pycache__" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("expected .git and __pycache__ in ignore, got %v", result.Config.Ignore)
	}
}

func TestConvertLegacyConfig_SetupCfg(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, "setup.cfg", `[metadata]
name = mypackage
version = 1.0.0

[pycodestyle]
max_line_length = 100
indent_size = 4
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	if result.Section != "pycodestyle" {
		t.Errorf("expected section %q, got %q", "pycodestyle", result.Section)
	}

	// Underscore spelling should work the same as hyphens
	e501, ok := result.Config.Rules["E501"]
	if !ok {
		t.Fatal("E501 rule not found in config")
	}
	if maxLen, ok := e501.Options["max_length"].(int); !ok || maxLen != 100 {
		t.Errorf("expected max_length 100, got %v", e501.Options["max_length"])
	}

	e111, ok := result.Config.Rules["E111"]
	if !ok {
		t.Fatal("E111 rule not found in config")
	}
	if indent, ok := e111.Options["indent_size"].(int); !ok || indent != 4 {
		t.Errorf("expected indent_size 4, got %v", e111.Options["indent_size"])
	}
}

func TestConvertLegacyConfig_Pep8Section(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, "tox.ini", `[tox]
envlist = py311

[pep8]
max-line-length = 90
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	if result.Section != "pep8" {
		t.Errorf("expected section %q, got %q", "pep8", result.Section)
	}

	e501, ok := result.Config.Rules["E501"]
	if !ok {
		t.Fatal("E501 rule not found in config")
	}
	if maxLen, ok := e501.Options["max_length"].(int); !ok || maxLen != 90 {
		t.Errorf("expected max_length 90, got %v", e501.Options["max_length"])
	}
}

func TestConvertLegacyConfig_IgnoreGroups(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, ".flake8", `[flake8]
ignore = E1,N
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	// E1 covers indentation, N covers both naming rules
	for _, id := range []string{"E111", "N801", "N802"} {
		rc, ok := result.Config.Rules[id]
		if !ok {
			t.Errorf("expected %s to be in config (from code group)", id)
			continue
		}
		if rc.Enabled == nil || *rc.Enabled {
			t.Errorf("expected %s to be disabled (from code group)", id)
		}
	}

	// Rules outside the ignored groups are untouched
	if _, ok := result.Config.Rules["E501"]; ok {
		t.Error("expected E501 to be absent from config")
	}
}

func TestConvertLegacyConfig_CompatAliases(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, ".flake8", `[flake8]
ignore = W293,E226
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	// W293 and E226 map onto the rules that cover them
	w291, ok := result.Config.Rules["W291"]
	if !ok {
		t.Fatal("expected W293 to resolve to W291")
	}
	if w291.Enabled == nil || *w291.Enabled {
		t.Error("expected W291 to be disabled")
	}

	e225, ok := result.Config.Rules["E225"]
	if !ok {
		t.Fatal("expected E226 to resolve to E225")
	}
	if e225.Enabled == nil || *e225.Enabled {
		t.Error("expected E225 to be disabled")
	}
}

func TestConvertLegacyConfig_Select(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, ".flake8", `[flake8]
select = E501,W291
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	// Selected rules are enabled
	for _, id := range []string{"E501", "W291"} {
		rc, ok := result.Config.Rules[id]
		if !ok {
			t.Fatalf("expected %s in config", id)
		}
		if rc.Enabled == nil || !*rc.Enabled {
			t.Errorf("expected %s to be enabled", id)
		}
	}

	// Everything else is disabled
	for _, id := range []string{"E111", "E225", "I100", "N801", "N802"} {
		rc, ok := result.Config.Rules[id]
		if !ok {
			t.Fatalf("expected %s in config", id)
		}
		if rc.Enabled == nil || *rc.Enabled {
			t.Errorf("expected %s to be disabled", id)
		}
	}
}

func TestConvertLegacyConfig_RuntimeOptions(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, ".flake8", `[flake8]
statistics = True
count = True
max-line-length = 100
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	// Runtime options warn but do not fail the conversion
	warned := 0
	for _, w := range result.Warnings {
		if strings.Contains(w, "statistics") || strings.Contains(w, "count") {
			warned++
		}
	}
	if warned != 2 {
		t.Errorf("expected warnings for statistics and count, got %v", result.Warnings)
	}

	// Translatable keys still convert
	if _, ok := result.Config.Rules["E501"]; !ok {
		t.Error("expected E501 in config")
	}
}

func TestConvertLegacyConfig_UnknownKeys(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, ".flake8", `[flake8]
some-plugin-option = 5
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "some-plugin-option") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about unknown key, got %v", result.Warnings)
	}
}

func TestConvertLegacyConfig_MultilineIgnore(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, ".flake8", `[flake8]
ignore =
    E501,
    W291
`)

	result, err := ConvertLegacyConfig(configPath)
	if err != nil {
		t.Fatalf("ConvertLegacyConfig() error = %v", err)
	}

	for _, id := range []string{"E501", "W291"} {
		rc, ok := result.Config.Rules[id]
		if !ok {
			t.Fatalf("expected %s in config", id)
		}
		if rc.Enabled == nil || *rc.Enabled {
			t.Errorf("expected %s to be disabled", id)
		}
	}
}

func TestConvertLegacyConfig_TOML(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, "pyproject.toml", `[tool.flake8]
max-line-length = 100
`)

	_, err := ConvertLegacyConfig(configPath)
	if err == nil {
		t.Fatal("expected error for TOML config file")
	}
}

func TestConvertLegacyConfig_NoLintSection(t *testing.T) {
	t.Parallel()

	configPath := writeLegacyConfig(t, "setup.cfg", `[metadata]
name = mypackage
`)

	_, err := ConvertLegacyConfig(configPath)
	if err == nil {
		t.Fatal("expected error for config without a lint section")
	}
}

func TestCanMigrate(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		".flake8":        true,
		".pycodestyle":   true,
		".pep8":          true,
		"setup.cfg":      true,
		"tox.ini":        true,
		"pyproject.toml": false,
		"settings.yaml":  false,
		"flake8rc":       false,
	}

	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			if got := CanMigrate(path); got != want {
				t.Errorf("CanMigrate(%q) = %v, want %v", path, got, want)
			}
		})
	}
}

func TestMigrationWarning(t *testing.T) {
	t.Parallel()

	if w := MigrationWarning("pyproject.toml"); !strings.Contains(w, "cannot be converted automatically") {
		t.Errorf("expected TOML warning, got %q", w)
	}
	if w := MigrationWarning("settings.yaml"); !strings.Contains(w, "not a recognized") {
		t.Errorf("expected unrecognized-format warning, got %q", w)
	}
	if w := MigrationWarning(".flake8"); w != "" {
		t.Errorf("expected no warning for migratable file, got %q", w)
	}
}

func TestIsTOMLConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"pyproject.toml": true,
		"config.toml":    true,
		".flake8":        false,
		"setup.cfg":      false,
		"tox.ini":        false,
	}

	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			if got := IsTOMLConfig(path); got != want {
				t.Errorf("IsTOMLConfig(%q) = %v, want %v", path, got, want)
			}
		})
	}
}
