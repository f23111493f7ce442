package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopystyle/internal/cli"
)

// dirtyPython carries trailing spaces on line 1, tripping W291.
const dirtyPython = "x = 1   \nprint(x)\n"

// cleanPython passes every default rule. It is also dirtyPython after a fix.
const cleanPython = "x = 1\nprint(x)\n"

// benignConfig sets nothing the assertions depend on. Every run passes
// --config so a developer's real project config cannot leak into the tests.
const benignConfig = "severity_default: warning\n"

// cliRun captures what one command invocation produced.
type cliRun struct {
	stdout string
	stderr string
	err    error
}

func (r cliRun) combined() string { return r.stdout + r.stderr }

// runCLI executes the root command with args against buffered output.
func runCLI(args ...string) cliRun {
	cmd := newTestRoot()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return cliRun{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writeFixture drops a Python file and a config into a fresh temp dir.
func writeFixture(t *testing.T, source, configYAML string) (pyFile, cfgFile string) {
	t.Helper()

	dir := t.TempDir()
	pyFile = filepath.Join(dir, "test.py")
	require.NoError(t, os.WriteFile(pyFile, []byte(source), 0644))
	cfgFile = filepath.Join(dir, ".gopystyle.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(configYAML), 0644))

	return pyFile, cfgFile
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

	tests := []struct {
		name           string
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "name shows the rule name only",
			ruleFormat:     "name",
			wantContains:   []string{"trailing-whitespace"},
			wantNotContain: []string{"W291"},
		},
		{
			name:           "id shows the rule code only",
			ruleFormat:     "id",
			wantContains:   []string{"W291"},
			wantNotContain: []string{"trailing-whitespace"},
		},
		{
			name:         "combined shows code and name together",
			ruleFormat:   "combined",
			wantContains: []string{"W291/trailing-whitespace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run := runCLI("check", "--config", cfgFile, "--rule-format", tt.ruleFormat,
				"--no-context", "--color", "never", pyFile)

			for _, want := range tt.wantContains {
				assert.Contains(t, run.combined(), want, "rule-format=%s", tt.ruleFormat)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, run.combined(), notWant, "rule-format=%s", tt.ruleFormat)
			}
		})
	}
}

// TestIntegration_DisableRuleInConfig tests that the rules map accepts both
// codes and names as keys.
func TestIntegration_DisableRuleInConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
	}{
		{"by code", "rules:\n  W291:\n    enabled: false\n"},
		{"by name", "rules:\n  trailing-whitespace:\n    enabled: false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pyFile, cfgFile := writeFixture(t, dirtyPython, tt.config)

			run := runCLI("check", "--config", cfgFile, "--no-context", "--color", "never", pyFile)

			out := run.combined()
			assert.NotContains(t, out, "W291", "disabled rule should not appear in output")
			assert.NotContains(t, out, "trailing-whitespace", "disabled rule should not appear in output")
		})
	}
}

// TestIntegration_DuplicateRuleConfig tests that a config naming the same
// rule under two keys still loads. The warning text itself is pinned in the
// configloader tests.
func TestIntegration_DuplicateRuleConfig(t *testing.T) {
	t.Parallel()

	cfg := "rules:\n  W291:\n    enabled: false\n  trailing-whitespace:\n    enabled: true\n"
	pyFile, cfgFile := writeFixture(t, cleanPython, cfg)

	run := runCLI("check", "--config", cfgFile, "--no-context", "--color", "never", pyFile)

	assert.NotContains(t, run.combined(), "error loading",
		"duplicate rule keys should load without error")
}

// TestIntegration_RulesCommandFormats tests that the rules command accepts
// each --rule-format value. The listing goes through the process logger on
// stderr, so only the exit status is pinned here.
func TestIntegration_RulesCommandFormats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"name", "id", "combined"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			run := runCLI("rules", "--rule-format", format)
			require.NoError(t, run.err, "rules --rule-format=%s should succeed", format)
		})
	}
}

// TestIntegration_DefaultRuleFormat tests that issues print rule codes by
// default, matching what pycodestyle users expect.
func TestIntegration_DefaultRuleFormat(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

	run := runCLI("check", "--config", cfgFile, "--no-context", "--color", "never", pyFile)

	assert.Contains(t, run.combined(), "W291", "default format should show the rule code")
	assert.NotContains(t, run.combined(), "trailing-whitespace",
		"default format should not show the rule name")
}

func TestIntegration_JSONOutputIncludesBothIDAndName(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

	run := runCLI("check", "--config", cfgFile, "--format", "json", "--color", "never", pyFile)

	for _, want := range []string{`"ruleId"`, `"ruleName"`, `"W291"`, `"trailing-whitespace"`} {
		assert.Contains(t, run.stdout, want, "json output should carry both the code and the name")
	}
}

// TestIntegration_DisableFlag tests --disable with a code and with a name.
func TestIntegration_DisableFlag(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"W291", "trailing-whitespace"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

			run := runCLI("check", "--config", cfgFile, "--disable", key,
				"--no-context", "--color", "never", pyFile)

			out := run.combined()
			assert.NotContains(t, out, "W291", "--disable %s should suppress the rule", key)
			assert.NotContains(t, out, "trailing-whitespace",
				"--disable %s should suppress the rule", key)
		})
	}
}

func TestIntegration_MixedRuleKeysInConfig(t *testing.T) {
	t.Parallel()

	// Trailing spaces on line 1 (W291) and an unspaced operator on line 2 (E225).
	source := "x = 1   \ny=2\nprint(x, y)\n"
	cfg := "rules:\n  W291:\n    enabled: false\n  missing-whitespace-around-operator:\n    enabled: false\n"
	pyFile, cfgFile := writeFixture(t, source, cfg)

	run := runCLI("check", "--config", cfgFile, "--no-context", "--color", "never", pyFile)

	out := run.combined()
	for _, notWant := range []string{"W291", "trailing-whitespace", "E225", "missing-whitespace-around-operator"} {
		assert.NotContains(t, out, notWant, "rules disabled under mixed keys should stay silent")
	}
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

	run := runCLI("check", "--config", cfgFile, "--format", "summary", "--color", "never", pyFile)

	out := run.combined()
	assert.Contains(t, out, "Rules Summary", "summary format should show the rules table")
	assert.Contains(t, out, "Files Summary", "summary format should show the files table")
	assert.Contains(t, out, "Total:", "summary format should show the total line")
}

func TestIntegration_SummaryOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		order  string
		first  string
		second string
	}{
		{order: "rules", first: "Rules Summary", second: "Files Summary"},
		{order: "files", first: "Files Summary", second: "Rules Summary"},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			t.Parallel()

			pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

			run := runCLI("check", "--config", cfgFile, "--format", "summary",
				"--summary-order", tt.order, "--color", "never", pyFile)

			out := run.combined()
			firstIdx := strings.Index(out, tt.first)
			secondIdx := strings.Index(out, tt.second)
			require.GreaterOrEqual(t, firstIdx, 0, "output should contain %q", tt.first)
			require.GreaterOrEqual(t, secondIdx, 0, "output should contain %q", tt.second)
			assert.Less(t, firstIdx, secondIdx,
				"--summary-order %s should print %s before %s", tt.order, tt.first, tt.second)
		})
	}
}

func TestIntegration_SummaryFormatNoIssues(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, cleanPython, benignConfig)

	run := runCLI("check", "--config", cfgFile, "--format", "summary", "--color", "never", pyFile)

	require.NoError(t, run.err, "check should succeed on a clean file")

	out := run.combined()
	assert.Contains(t, out, "No issues found", "clean runs should say so")
	assert.NotContains(t, out, "Rules Summary", "clean runs should skip the tables")
	assert.NotContains(t, out, "Files Summary", "clean runs should skip the tables")
}

// TestIntegration_ReportFormat tests the classic analysis report output.
func TestIntegration_ReportFormat(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

	run := runCLI("check", "--config", cfgFile, "--format", "report", "--color", "never", pyFile)

	out := run.combined()
	assert.Contains(t, out, "PEP 8 Style Analysis Report", "report format should show the banner")
	assert.Contains(t, out, "Code: W291", "report format should show the rule code")
	assert.Contains(t, out, "Line 1", "report format should show the line number")
}

func TestIntegration_FixDryRun(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

	runCLI("check", "--config", cfgFile, "--fix", "--dry-run",
		"--no-context", "--color", "never", pyFile)

	after, err := os.ReadFile(pyFile)
	require.NoError(t, err)
	assert.Equal(t, dirtyPython, string(after), "dry-run must not modify the file")
}

func TestIntegration_FixAppliesCorrections(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

	runCLI("check", "--config", cfgFile, "--fix", "--no-backups",
		"--no-context", "--color", "never", pyFile)

	after, err := os.ReadFile(pyFile)
	require.NoError(t, err)
	assert.Equal(t, cleanPython, string(after), "fix should strip the trailing whitespace")
}

// TestIntegration_DiffFlag tests that --diff previews corrections as a
// unified diff without touching the file.
func TestIntegration_DiffFlag(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, benignConfig)

	run := runCLI("check", "--config", cfgFile, "--diff", "--color", "never", pyFile)

	out := run.combined()
	assert.Contains(t, out, "diff --git", "diff output should use git-style headers")
	assert.Contains(t, out, "+x = 1\n", "the corrected line should show as an addition")

	after, err := os.ReadFile(pyFile)
	require.NoError(t, err)
	assert.Equal(t, dirtyPython, string(after), "--diff must not modify the file")
}

func TestIntegration_MissingPathIsUsageError(t *testing.T) {
	t.Parallel()

	run := runCLI("check")

	require.Error(t, run.err, "check without a path should fail")
	assert.ErrorIs(t, run.err, cli.ErrUsage)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeForError(run.err))
}

// TestIntegration_ConfigFileFormat tests that the output format can come
// from the config file instead of the flag.
func TestIntegration_ConfigFileFormat(t *testing.T) {
	t.Parallel()

	pyFile, cfgFile := writeFixture(t, dirtyPython, "severity_default: warning\nformat: summary\n")

	run := runCLI("check", "--config", cfgFile, "--color", "never", pyFile)

	assert.Contains(t, run.combined(), "Rules Summary",
		"format from the config file should select the summary reporter")
}
