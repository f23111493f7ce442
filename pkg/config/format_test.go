package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gopystyle/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	const id, name = "W291", "trailing-whitespace"

	cases := []struct {
		desc     string
		format   config.RuleFormat
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, name, name},
		{"id format", config.RuleFormatID, name, id},
		{"combined format", config.RuleFormatCombined, name, id + "/" + name},
		{"empty name falls back to id", config.RuleFormatName, "", id},
		{"unknown format falls back to id", config.RuleFormat("fancy"), name, id},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, config.FormatRuleID(tc.format, id, tc.ruleName), tc.desc)
	}
}
