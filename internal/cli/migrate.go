package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopystyle/internal/configloader"
	"github.com/yaklabco/gopystyle/internal/logging"
)

type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a pycodestyle or flake8 configuration to gopystyle format",
		Long: `Convert an existing pycodestyle or flake8 configuration (.pycodestyle,
.pep8, .flake8, or a [pycodestyle]/[pep8]/[flake8] section in setup.cfg or
tox.ini) to gopystyle format (.gopystyle.yml).

Without an input argument the current directory is searched for a legacy
configuration file.

TOML configuration (pyproject.toml) cannot be converted automatically and
requires manual migration.

Examples:
  gopystyle migrate                      Auto-detect and convert legacy config
  gopystyle migrate .flake8              Convert specific file
  gopystyle migrate --output config.yml  Write to custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Replace the output file if it already exists")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".gopystyle.yml", "Output file path")

	return cmd
}

func runMigrate(ctx context.Context, flags *migrateFlags) error {
	logger := logging.FromContext(ctx)

	src := flags.input
	if src == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		if src = configloader.FindLegacyConfig(cwd); src == "" {
			return errors.New("no pycodestyle or flake8 configuration file found in current directory")
		}
		logger.Info("found legacy config", logging.FieldPath, src)
	}

	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	if !configloader.CanMigrate(src) {
		return fmt.Errorf("migration not supported: %s", configloader.MigrationWarning(src))
	}

	dst, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", flags.output, err)
	}
	if _, err := os.Stat(dst); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	result, err := configloader.ConvertLegacyConfig(src)
	if err != nil {
		return fmt.Errorf("convert %s: %w", src, err)
	}
	for _, w := range result.Warnings {
		logger.Warn(w)
	}

	header := configloader.GenerateMigrationHeader(src)
	data, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	if err := os.WriteFile(dst, data, configFileMode); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	logger.Info("migrated configuration", logging.FieldInput, src, logging.FieldOutput, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("check the warnings above and review the generated file")
	}

	// setup.cfg and tox.ini carry unrelated project settings, so only the
	// lint section should be removed, not the whole file.
	switch filepath.Base(src) {
	case "setup.cfg", "tox.ini":
		logger.Info(fmt.Sprintf("you can now remove the [%s] section from %s",
			result.Section, filepath.Base(src)))
	default:
		logger.Info("you can now delete the old configuration file")
	}

	return nil
}
