package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration with two-space indentation.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("flush config yaml: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration under a comment
// header, separated from the document by a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	doc, err := c.ToYAML()
	if err != nil {
		return nil, err
	}
	if header == "" {
		return doc, nil
	}

	out := []byte(header)
	if out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, '\n')
	return append(out, doc...), nil
}

// FromYAML parses a configuration document. The Rules map comes back
// non-nil so callers can index it without checking.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return &cfg, nil
}

// Clone returns a deep copy. Serialized fields travel through a YAML
// round-trip. NoBackups never serializes, and omitempty drops empty
// rule lists, so those are copied on top.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	doc, err := c.ToYAML()
	if err != nil {
		return c.deepCopy()
	}
	out, err := FromYAML(doc)
	if err != nil {
		return c.deepCopy()
	}

	out.NoBackups = c.NoBackups
	out.EnableRules = slices.Clone(c.EnableRules)
	out.DisableRules = slices.Clone(c.DisableRules)
	out.FixRules = slices.Clone(c.FixRules)

	return out
}

// deepCopy is the fallback when the YAML round-trip fails.
func (c *Config) deepCopy() *Config {
	cp := &Config{
		SeverityDefault: c.SeverityDefault,
		Ignore:          slices.Clone(c.Ignore),
		Backups:         c.Backups, // value fields only
		Fix:             c.Fix,
		DryRun:          c.DryRun,
		Format:          c.Format,
		RuleFormat:      c.RuleFormat,
		Jobs:            c.Jobs,
		EnableRules:     slices.Clone(c.EnableRules),
		DisableRules:    slices.Clone(c.DisableRules),
		FixRules:        slices.Clone(c.FixRules),
		NoBackups:       c.NoBackups,
	}

	if c.Rules != nil {
		cp.Rules = make(map[string]RuleConfig, len(c.Rules))
		for name, rc := range c.Rules {
			cp.Rules[name] = rc.clone()
		}
	}

	return cp
}

func (rc RuleConfig) clone() RuleConfig {
	return RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		AutoFix:  clonePtr(rc.AutoFix),
		// Nested maps and slices inside Options stay shared.
		Options: maps.Clone(rc.Options),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
