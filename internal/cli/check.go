package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopystyle/internal/configloader"
	"github.com/yaklabco/gopystyle/internal/logging"
	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
	_ "github.com/yaklabco/gopystyle/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gopystyle/pkg/parser/pyscan"
	"github.com/yaklabco/gopystyle/pkg/reporter"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

type checkFlags struct {
	format          string
	severityDefault string
	ignore          []string
	enable          []string
	disable         []string
	fixRules        []string
	diff            bool
	strict          bool
	noContext       bool
	compact         bool
	perFile         bool
	ruleFormat      string
	summaryOrder    string
	cpuprofile      string
	memprofile      string
	traceFile       string
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check <paths...>",
		Aliases: []string{"lint"},
		Short:   "Check Python files for style issues",
		Long:    checkLongDescription,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: at least one file or directory path is required", ErrUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Check Python source files for style issues.

Takes one or more file or directory paths. Directories are walked
recursively and every .py, .pyi, and .pyw file found is checked.

Examples:
  gopystyle check .                    # Check current directory
  gopystyle check src/                 # Check src directory
  gopystyle check app.py               # Check single file
  gopystyle check app.py --fix         # Check and auto-correct issues
  gopystyle check . --diff             # Preview corrections as a diff
  gopystyle check . --fix --dry-run    # Show corrections without applying
  gopystyle check . --format report    # Classic analysis report output
  gopystyle check . --format json      # Output as JSON for CI
  gopystyle check . --strict           # Treat warnings as errors`

func runCheck(cmd *cobra.Command, args []string, cfg *config.Config, flags *checkFlags) error {
	logger := logging.FromContext(cmd.Context())

	stopProfiling, err := startProfiling(flags)
	if err != nil {
		return err
	}
	defer stopProfiling()

	// Flags override config only when explicitly set on the command line.
	if cmd.Flags().Changed("format") {
		if !configloader.IsValidFormat(config.OutputFormat(flags.format)) {
			return fmt.Errorf("%w: invalid format %q (expected text, table, json, report, sarif, diff, or summary)",
				ErrUsage, flags.format)
		}
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("rule-format") {
		if !configloader.IsValidRuleFormat(config.RuleFormat(flags.ruleFormat)) {
			return fmt.Errorf("%w: invalid rule format %q (expected id, name, or combined)",
				ErrUsage, flags.ruleFormat)
		}
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if cmd.Flags().Changed("severity-default") {
		if !configloader.IsValidSeverity(flags.severityDefault) {
			return fmt.Errorf("%w: invalid severity %q (expected error, warning, or info)",
				ErrUsage, flags.severityDefault)
		}
		cfg.SeverityDefault = flags.severityDefault
	}
	cfg.Ignore = flags.ignore
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules

	// --diff is shorthand for a dry-run fix pass rendered as a unified diff.
	if flags.diff {
		cfg.Fix = true
		cfg.DryRun = true
		if !cmd.Flags().Changed("format") {
			cfg.Format = config.FormatDiff
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// --config lives on the root command as a persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return errors.Join(ErrConfigLoad, err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, finalCfg.Format,
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	parser := pyscan.New()
	registry := lint.DefaultRegistry
	engine := lint.NewEngine(parser, registry)
	pipeline := lint.NewPipeline(engine)
	checkRunner := runner.New(pipeline)

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: finalCfg.Ignore,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	logger.Debug("check run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldIssuesTotal, result.Stats.IssuesTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		PerFile:      flags.perFile,
		FixMode:      finalCfg.Fix && !finalCfg.DryRun,
		RuleFormat:   finalCfg.RuleFormat,
		SummaryOrder: config.SummaryOrder(flags.summaryOrder),
		WorkingDir:   workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.strict) {
	case ExitLintErrors:
		return ErrIssuesFound
	case ExitLintWarnings:
		return ErrWarningsFound
	}

	return nil
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically correct issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show corrections without applying them")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "preview corrections as a unified diff (implies --fix --dry-run)")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, table, json, report, sarif, diff, summary")
	cmd.Flags().StringVar(&flags.severityDefault, "severity-default", "",
		"default severity for rules: error, warning, or info")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-correction to specific rule IDs")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "id",
		"rule identifier format in output: id, name, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")

	// Profiling flags.
	cmd.Flags().StringVar(&flags.cpuprofile, "cpuprofile", "", "write CPU profile to file")
	cmd.Flags().StringVar(&flags.memprofile, "memprofile", "", "write memory profile to file")
	cmd.Flags().StringVar(&flags.traceFile, "trace", "", "write execution trace to file")
}

// startProfiling begins any requested CPU, heap, or execution trace
// profiling. The returned stop function finalizes profile output and must
// run before the process exits, even when the check run fails.
func startProfiling(flags *checkFlags) (func(), error) {
	var stops []func()

	if flags.cpuprofile != "" {
		f, err := os.Create(flags.cpuprofile)
		if err != nil {
			return nil, fmt.Errorf("create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("start cpu profile: %w", err)
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			f.Close()
		})
	}

	if flags.traceFile != "" {
		f, err := os.Create(flags.traceFile)
		if err != nil {
			return nil, fmt.Errorf("create trace file: %w", err)
		}
		if err := trace.Start(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("start trace: %w", err)
		}
		stops = append(stops, func() {
			trace.Stop()
			f.Close()
		})
	}

	if flags.memprofile != "" {
		path := flags.memprofile
		stops = append(stops, func() {
			f, err := os.Create(path)
			if err != nil {
				logging.Default().Error("create memory profile", logging.FieldError, err)
				return
			}
			defer f.Close()

			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				logging.Default().Error("write memory profile", logging.FieldError, err)
			}
		})
	}

	return func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}, nil
}
