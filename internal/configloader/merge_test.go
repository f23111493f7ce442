package configloader

import (
	"testing"

	"github.com/yaklabco/gopystyle/pkg/config"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestMerge_NilInputs(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	if got := merge(nil, base); got != base {
		t.Error("merge(nil, x) should return x")
	}
	if got := merge(base, nil); got != base {
		t.Error("merge(x, nil) should return x")
	}
}

func TestMerge_ScalarPrecedence(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.SeverityDefault = "warning"
	base.Jobs = 2

	override := &config.Config{SeverityDefault: "error", Format: config.FormatJSON}

	got := merge(base, override)
	if got.SeverityDefault != "error" {
		t.Errorf("severity_default = %q, want override value %q", got.SeverityDefault, "error")
	}
	if got.Format != config.FormatJSON {
		t.Errorf("format = %q, want %q", got.Format, config.FormatJSON)
	}
	if got.Jobs != 2 {
		t.Errorf("jobs = %d, want base value 2 (override unset)", got.Jobs)
	}
}

func TestMerge_BooleansOnlyRatchetOn(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Fix = true

	got := merge(base, &config.Config{DryRun: true})
	if !got.Fix {
		t.Error("override with zero-value Fix must not clear base Fix")
	}
	if !got.DryRun {
		t.Error("override DryRun should stick")
	}
}

func TestMerge_SlicesReplaceWholesale(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Ignore = []string{"venv/**", "build/**"}

	got := merge(base, &config.Config{Ignore: []string{"*.bak"}})
	if len(got.Ignore) != 1 || got.Ignore[0] != "*.bak" {
		t.Errorf("ignore = %v, want [*.bak]", got.Ignore)
	}

	// A nil slice in the override leaves the base alone.
	got = merge(base, &config.Config{})
	if len(got.Ignore) != 2 {
		t.Errorf("ignore = %v, want the base slice untouched", got.Ignore)
	}
}

func TestMerge_RulesMergePerRule(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Rules["E501"] = config.RuleConfig{
		Enabled:  boolPtr(true),
		Severity: strPtr("warning"),
		Options:  map[string]any{"max_line_length": 79},
	}

	override := &config.Config{
		Rules: map[string]config.RuleConfig{
			"E501": {
				Severity: strPtr("error"),
				Options:  map[string]any{"max_line_length": 120},
			},
			"W291": {Enabled: boolPtr(false)},
		},
	}

	got := merge(base, override)

	e501 := got.Rules["E501"]
	if e501.Enabled == nil || !*e501.Enabled {
		t.Error("E501 enabled should survive from base")
	}
	if e501.Severity == nil || *e501.Severity != "error" {
		t.Error("E501 severity should come from override")
	}
	if e501.Options["max_line_length"] != 120 {
		t.Errorf("E501 max_line_length = %v, want 120", e501.Options["max_line_length"])
	}

	if w291, ok := got.Rules["W291"]; !ok || w291.Enabled == nil || *w291.Enabled {
		t.Error("W291 from override should be present and disabled")
	}

	// The merge must not write through to the base rule's options.
	if base.Rules["E501"].Options["max_line_length"] != 79 {
		t.Error("merge mutated the base rule options")
	}
}
