package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopystyle/internal/logging"
	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo is one rule in machine-readable listing output. Code is the
// pycodestyle-style check code ("E501"), Name the registry name.
type ruleInfo struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Fixable     bool   `json:"fixable"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available style rules",
		Long: `List all available style rules with their codes, descriptions,
default severity, and whether they support auto-correction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "id",
		"rule identifier format in output: id, name, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func runRules(cmd *cobra.Command, flags *rulesFlags) error {
	rules := lint.DefaultRegistry.Rules()
	if flags.format == formatJSON {
		return writeRulesJSON(cmd.OutOrStdout(), rules)
	}

	logger := logging.FromContext(cmd.Context())
	if len(rules) == 0 {
		logger.Info("no rules registered yet")
		return nil
	}

	logger.Info("available rules")
	ruleFormat := config.RuleFormat(flags.ruleFormat)
	for _, rule := range rules {
		fixable := "-"
		if rule.CanFix() {
			fixable = "yes"
		}
		logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()),
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description(),
		)
	}
	return nil
}

// writeRulesJSON renders the registry as an indented JSON array.
func writeRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			Code:        rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Fixable:     rule.CanFix(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
