package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopystyle/internal/logging"
	"github.com/yaklabco/gopystyle/pkg/config"
)

// configFileMode keeps generated config files world-readable.
const configFileMode = 0644

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gopystyle configuration file",
		Long: `Write a starter .gopystyle.yml into the current directory. The
generated file documents the common settings; edit it to turn rules on or
off, adjust severities, or set per-rule options.

Examples:
  gopystyle init                   Create minimal .gopystyle.yml
  gopystyle init --full            Create full config with all rules documented
  gopystyle init --format json     Create .gopystyle.json instead
  gopystyle init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Replace the configuration file if it already exists")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write the full template documenting every rule")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Template format, yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .gopystyle.yml or .gopystyle.json)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.FromContext(ctx)

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q (expected yaml or json)", ErrUsage, flags.format)
	}

	out := flags.output
	if out == "" {
		out = ".gopystyle.yml"
		if flags.format == "json" {
			out = ".gopystyle.json"
		}
	}

	abs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", out, err)
	}

	if _, err := os.Stat(abs); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", out)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, out)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	if err := os.WriteFile(abs, content, configFileMode); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	logger.Info("wrote configuration file", logging.FieldPath, out)
	if flags.full {
		logger.Info("the full template documents every rule")
	}
	logger.Info("run 'gopystyle rules' to see all available rules")

	return nil
}
