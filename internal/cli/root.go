// Package cli provides the Cobra command structure for gopystyle.
package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopystyle/internal/configloader"
	"github.com/yaklabco/gopystyle/internal/logging"
)

// BuildInfo carries the version stamps injected at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gopystyle command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gopystyle",
		Short: "A blisteringly fast, self-correcting Python style checker",
		Long: `gopystyle is a blisteringly fast, self-correcting Python style checker
written in Go.

It enforces PEP 8 conventions through a rich rule system covering whitespace,
indentation, line length, import ordering, and naming. gopystyle can
automatically correct many issues while ensuring safety through conflict
detection, dry-run mode, and optional backups.

` + envVarHelp(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			// Subcommands pull this logger back out with FromContext.
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flag parse failures are usage errors, not internal ones.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	// Flags shared by every subcommand.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Subcommands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	installStyledHelp(rootCmd, &color)

	return rootCmd
}

// envVarHelp renders the supported environment overrides for help output.
func envVarHelp() string {
	vars := configloader.ListEnvVars()

	var b strings.Builder
	b.WriteString("Environment variables:")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "\n  %-28s%s", name, vars[name])
	}
	return b.String()
}
