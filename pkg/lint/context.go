package lint

import (
	"context"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// RuleContext hands a rule everything it may consult while checking one
// file. A fresh context is built per rule invocation and discarded
// afterwards; the embedded Ctx field exists so Apply stays a single
// method, with Cancelled as the polling helper.
type RuleContext struct {
	// Ctx carries cancellation for long-running rules.
	Ctx context.Context

	// File is the parsed snapshot under inspection.
	File *pysrc.FileSnapshot

	// Root mirrors File.Root for convenience.
	Root *pysrc.Node

	// Config is the full resolved configuration.
	Config *config.Config

	// RuleConfig is this rule's own configuration, nil when absent.
	RuleConfig *config.RuleConfig

	// Builder collects fix edits the rule proposes.
	Builder *fix.EditBuilder

	// Registry allows rules to look up sibling rules by name.
	Registry *Registry

	// cache indexes definitions on first use.
	cache *NodeCache
}

// NewRuleContext assembles the per-invocation context for one rule.
func NewRuleContext(ctx context.Context, file *pysrc.FileSnapshot, cfg *config.Config, ruleCfg *config.RuleConfig) *RuleContext {
	rc := &RuleContext{
		Ctx:        ctx,
		File:       file,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Builder:    fix.NewEditBuilder(),
	}
	if file != nil {
		rc.Root = file.Root
	}
	return rc
}

// Cancelled polls the context without blocking.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option reads a rule option, falling back when the key is absent.
func (rc *RuleContext) Option(key string, fallback any) any {
	if rc.RuleConfig == nil {
		return fallback
	}
	v, ok := rc.RuleConfig.Options[key]
	if !ok {
		return fallback
	}
	return v
}

// OptionInt reads an integer rule option. YAML decodes numbers as
// float64, so that shape converts too.
func (rc *RuleContext) OptionInt(key string, fallback int) int {
	switch v := rc.Option(key, fallback).(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// OptionString reads a string rule option.
func (rc *RuleContext) OptionString(key string, fallback string) string {
	if s, ok := rc.Option(key, fallback).(string); ok {
		return s
	}
	return fallback
}

// OptionBool reads a boolean rule option.
func (rc *RuleContext) OptionBool(key string, fallback bool) bool {
	if b, ok := rc.Option(key, fallback).(bool); ok {
		return b
	}
	return fallback
}

// OptionStringSlice reads a string list rule option, accepting the
// []any shape YAML produces.
func (rc *RuleContext) OptionStringSlice(key string, fallback []string) []string {
	v := rc.Option(key, fallback)
	if slice, ok := v.([]string); ok {
		return slice
	}
	if items, ok := v.([]any); ok {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

// Classes returns the class definitions in document order, indexing the
// tree on first use.
func (rc *RuleContext) Classes() []*pysrc.Node {
	return rc.nodeCache().Classes()
}

// Functions returns the function definitions in document order,
// indexing the tree on first use.
func (rc *RuleContext) Functions() []*pysrc.Node {
	return rc.nodeCache().Functions()
}

// Definitions returns classes and functions together in document order.
func (rc *RuleContext) Definitions() []*pysrc.Node {
	return rc.nodeCache().Definitions()
}

func (rc *RuleContext) nodeCache() *NodeCache {
	if rc.cache == nil {
		rc.cache = newNodeCache()
		rc.cache.build(rc.Root)
	}
	return rc.cache
}
