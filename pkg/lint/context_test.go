package lint_test

import (
	"context"
	"testing"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// optionCtx builds a rule context carrying only the given rule options.
func optionCtx(options map[string]any) *lint.RuleContext {
	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}
	return lint.NewRuleContext(context.Background(), nil, nil, ruleCfg)
}

func TestNewRuleContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	file := &pysrc.FileSnapshot{
		Path:    "test.py",
		Content: []byte("x = 1\n"),
		Root:    pysrc.NewModule(),
	}
	cfg := config.NewConfig()
	ruleCfg := &config.RuleConfig{
		Options: map[string]any{"key": "value"},
	}

	rc := lint.NewRuleContext(ctx, file, cfg, ruleCfg)

	if rc.Ctx != ctx {
		t.Error("Ctx not kept")
	}
	if rc.File != file {
		t.Error("File not kept")
	}
	if rc.Root != file.Root {
		t.Error("Root does not mirror File.Root")
	}
	if rc.Config != cfg {
		t.Error("Config not kept")
	}
	if rc.RuleConfig != ruleCfg {
		t.Error("RuleConfig not kept")
	}
	if rc.Builder == nil {
		t.Error("Builder not initialized")
	}
}

func TestNewRuleContext_NilFile(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil)

	if rc.File != nil {
		t.Error("File = non-nil, want nil")
	}
	if rc.Root != nil {
		t.Error("Root = non-nil for a nil file")
	}
}

func TestRuleContext_Cancelled(t *testing.T) {
	t.Parallel()

	t.Run("live context", func(t *testing.T) {
		t.Parallel()

		rc := lint.NewRuleContext(context.Background(), nil, nil, nil)
		if rc.Cancelled() {
			t.Error("Cancelled() = true for a live context")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rc := lint.NewRuleContext(ctx, nil, nil, nil)
		if !rc.Cancelled() {
			t.Error("Cancelled() = false after cancel")
		}
	})
}

func TestRuleContext_Option(t *testing.T) {
	t.Parallel()

	cases := []struct {
		options map[string]any
		want    any
	}{
		{nil, "fallback"},
		{map[string]any{}, "fallback"},
		{map[string]any{"other": "value"}, "fallback"},
		{map[string]any{"key": "found"}, "found"},
	}
	for _, tc := range cases {
		if got := optionCtx(tc.options).Option("key", "fallback"); got != tc.want {
			t.Errorf("Option(%v) = %v, want %v", tc.options, got, tc.want)
		}
	}
}

func TestRuleContext_OptionInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		options map[string]any
		want    int
	}{
		{nil, 100},
		{map[string]any{"max_length": 79}, 79},
		// YAML decodes numbers as float64.
		{map[string]any{"max_length": float64(88)}, 88},
		{map[string]any{"max_length": "not an int"}, 100},
	}
	for _, tc := range cases {
		if got := optionCtx(tc.options).OptionInt("max_length", 100); got != tc.want {
			t.Errorf("OptionInt(%v) = %d, want %d", tc.options, got, tc.want)
		}
	}
}

func TestRuleContext_OptionString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		options map[string]any
		want    string
	}{
		{nil, "pep8"},
		{map[string]any{"style": "custom"}, "custom"},
		{map[string]any{"style": 123}, "pep8"},
	}
	for _, tc := range cases {
		if got := optionCtx(tc.options).OptionString("style", "pep8"); got != tc.want {
			t.Errorf("OptionString(%v) = %q, want %q", tc.options, got, tc.want)
		}
	}
}

func TestRuleContext_OptionBool(t *testing.T) {
	t.Parallel()

	cases := []struct {
		options map[string]any
		def     bool
		want    bool
	}{
		{nil, true, true},
		{map[string]any{"enabled": true}, false, true},
		{map[string]any{"enabled": false}, true, false},
		{map[string]any{"enabled": "yes"}, true, true},
	}
	for _, tc := range cases {
		if got := optionCtx(tc.options).OptionBool("enabled", tc.def); got != tc.want {
			t.Errorf("OptionBool(%v) = %v, want %v", tc.options, got, tc.want)
		}
	}
}

func TestRuleContext_HasRegistry(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry()
	rc := &lint.RuleContext{Registry: reg}

	if rc.Registry != reg {
		t.Error("Registry not kept")
	}
}

// buildDefinitionTree builds a module holding a class with a method and
// a nested class, plus a plain and an async top-level function.
func buildDefinitionTree() *pysrc.Node {
	module := pysrc.NewModule()

	shape := pysrc.NewNode(pysrc.NodeClass)
	shape.Name = "Shape"
	pysrc.AppendChild(module, shape)

	area := pysrc.NewNode(pysrc.NodeFunction)
	area.Name = "area"
	pysrc.AppendChild(shape, area)

	inner := pysrc.NewNode(pysrc.NodeClass)
	inner.Name = "Inner"
	pysrc.AppendChild(shape, inner)

	process := pysrc.NewNode(pysrc.NodeFunction)
	process.Name = "process"
	pysrc.AppendChild(module, process)

	fetch := pysrc.NewNode(pysrc.NodeFunction)
	fetch.Name = "fetch"
	fetch.Async = true
	pysrc.AppendChild(module, fetch)

	return module
}

// definitionCtx wraps the shared definition tree in a rule context.
func definitionCtx() *lint.RuleContext {
	file := &pysrc.FileSnapshot{Root: buildDefinitionTree()}
	return lint.NewRuleContext(context.Background(), file, nil, nil)
}

func TestRuleContext_Classes(t *testing.T) {
	t.Parallel()

	// Shape and the nested Inner.
	if classes := definitionCtx().Classes(); len(classes) != 2 {
		t.Errorf("Classes() returned %d, want 2", len(classes))
	}
}

func TestRuleContext_Functions(t *testing.T) {
	t.Parallel()

	// area, process, and the async fetch.
	if functions := definitionCtx().Functions(); len(functions) != 3 {
		t.Errorf("Functions() returned %d, want 3", len(functions))
	}
}

func TestRuleContext_Definitions(t *testing.T) {
	t.Parallel()

	if defs := definitionCtx().Definitions(); len(defs) != 5 {
		t.Errorf("Definitions() returned %d, want 5", len(defs))
	}
}

func TestRuleContext_NodeCache_LazyInitialization(t *testing.T) {
	t.Parallel()

	rc := definitionCtx()

	first := rc.Classes()
	second := rc.Classes()

	if len(first) != len(second) {
		t.Fatalf("class count changed between calls: %d vs %d", len(first), len(second))
	}

	// Repeated calls hand back the cached slice, not a fresh walk.
	if len(first) > 0 && &first[0] != &second[0] {
		t.Error("Classes() rebuilt the slice instead of caching it")
	}
}

func TestRuleContext_NodeCache_NilRoot(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil)

	if len(rc.Classes()) != 0 {
		t.Error("Classes() non-empty for nil root")
	}
	if len(rc.Functions()) != 0 {
		t.Error("Functions() non-empty for nil root")
	}
	if len(rc.Definitions()) != 0 {
		t.Error("Definitions() non-empty for nil root")
	}
}
