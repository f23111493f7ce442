package cli

import (
	"errors"

	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

// Process exit codes. The 6x/7x values follow BSD sysexits so scripts can
// tell usage and environment failures apart from lint findings.
const (
	ExitSuccess       = 0  // clean run
	ExitLintErrors    = 1  // style errors found
	ExitLintWarnings  = 2  // warnings found under --strict
	ExitInvalidUsage  = 64 // bad flags or arguments
	ExitConfigError   = 65 // configuration could not be loaded
	ExitInternalError = 70 // unexpected failure
	ExitIOError       = 74 // file could not be read or written
)

// Sentinel errors used to carry exit-code intent out of command RunE
// functions. main maps them to process exit codes via ExitCodeForError.
var (
	// ErrIssuesFound is returned when style errors are found.
	ErrIssuesFound = errors.New("style issues found")

	// ErrWarningsFound is returned when only warnings are found and strict
	// mode promotes them to a failing exit code.
	ErrWarningsFound = errors.New("style warnings found")

	// ErrUsage marks invalid command-line usage, such as a missing path
	// argument or an unknown flag value.
	ErrUsage = errors.New("invalid usage")

	// ErrConfigLoad marks a configuration that could not be loaded or parsed.
	ErrConfigLoad = errors.New("failed to load configuration")
)

// ExitCodeFromResult maps a completed run to an exit code. Warnings only
// fail the process in strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	bySeverity := result.Stats.IssuesBySeverity
	switch {
	case bySeverity["error"] > 0:
		return ExitLintErrors
	case strict && bySeverity["warning"] > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// ExitCodeForError maps an error returned from command execution to a
// process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrWarningsFound):
		return ExitLintWarnings
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfigLoad):
		return ExitConfigError
	case errors.Is(err, lint.ErrFileNotFound),
		errors.Is(err, lint.ErrPermissionDenied),
		errors.Is(err, lint.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
