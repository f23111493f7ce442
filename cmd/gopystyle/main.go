// Command gopystyle checks Python source files against PEP 8 style rules
// and can rewrite them in place.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gopystyle/internal/cli"
	"github.com/yaklabco/gopystyle/internal/logging"

	// Register the built-in rule set.
	_ "github.com/yaklabco/gopystyle/pkg/lint/rules"
)

// Populated at release time through -ldflags.
//
//nolint:gochecknoglobals // ldflags can only target package-level variables
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run keeps the exit-code decision out of main so deferred cleanup in the
// command tree still executes before the process ends.
func run() int {
	root := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	err := root.Execute()
	if err == nil {
		return 0
	}

	// Issue sentinels only steer the exit code; they are not failures
	// worth logging.
	if !errors.Is(err, cli.ErrIssuesFound) && !errors.Is(err, cli.ErrWarningsFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCodeForError(err)
}
