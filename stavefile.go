//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Running stave with no target builds the binary.
var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"c":   Check,
	"i":   Install,
	"t":   Test.Default,
	"l":   Lint.Default,
	"fmt": Lint.Fmt,
	"cmp": Bench.Compare,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/gopystyle with version metadata stamped in. The target
// is skipped when no source changed since the last build.
func Build() error {
	rebuild, err := target.Dir("bin/gopystyle", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/gopystyle is up to date")
		return nil
	}
	fmt.Println("Building gopystyle...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/gopystyle", "./cmd/gopystyle")
}

// Check chains the fmt, lint, and test targets.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean deletes the bin directory and coverage output.
func Clean() error {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install puts gopystyle into $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing gopystyle...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gopystyle")
}

// Uninstall removes the installed binary. Already-absent counts as success.
func Uninstall() error {
	fmt.Println("Uninstalling gopystyle...")
	bin, err := findInstalledBinary("gopystyle")
	if err != nil {
		return err
	}
	if err := os.Remove(bin); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("gopystyle is not installed")
			return nil
		}
		return fmt.Errorf("remove %s: %w", bin, err)
	}
	fmt.Println("Removed", bin)
	return nil
}

// Deps downloads modules and tidies go.mod.
func Deps() error {
	fmt.Println("Syncing modules...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage renders the HTML coverage report and opens it.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Rendering coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// Default runs the suite through gotestsum with the race detector on and
// coverage collected.
func (Test) Default() error {
	fmt.Println("Testing...")
	return runTests("pkgname-and-test-fails")
}

// Verbose switches gotestsum to standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Testing (verbose)...")
	return runTests("standard-verbose")
}

func runTests(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-v", "-race",
		"-p", procs,
		"-parallel", procs,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Default lints with golangci-lint in fix mode.
func (Lint) Default() error {
	fmt.Println("Linting (fix mode)...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI lints read-only, the way the pipeline does.
func (Lint) CI() error {
	fmt.Println("Linting...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt rewrites the tree with gofmt.
func (Lint) Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file still needs gofmt.
func (Lint) FmtCheck() error {
	dirty, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if dirty != "" {
		return fmt.Errorf("gofmt needed:\n%s\nRun 'stave lint:fmt'", dirty)
	}
	fmt.Println("✓ Formatting OK")
	return nil
}

// Vet runs go vet over every package.
func (Lint) Vet() error {
	fmt.Println("Vetting...")
	return sh.RunV("go", "vet", "./...")
}

// Gate runs the full CI sequence locally, in the order the pipeline runs it.
func (CI) Gate() error {
	fmt.Println("Running CI gate...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ CI gate passed")
	return nil
}

// ModTidy fails when 'go mod tidy' would change go.mod or go.sum.
func (CI) ModTidy() error {
	fmt.Println("Checking module tidiness...")

	snapshot := func() (string, error) {
		var combined strings.Builder
		for _, name := range []string{"go.mod", "go.sum"} {
			data, err := os.ReadFile(name)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", name, err)
			}
			combined.Write(data)
		}
		return combined.String(), nil
	}

	before, err := snapshot()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := snapshot()
	if err != nil {
		return err
	}

	if before != after {
		return errors.New("'go mod tidy' changed go.mod or go.sum; commit the result")
	}
	fmt.Println("✓ Modules are tidy")
	return nil
}

// Cross compiles every release platform to flush out platform-specific
// breakage before the release pipeline hits it.
func (CI) Cross() error {
	fmt.Println("Cross-compiling release platforms...")
	platforms := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64", "freebsd/arm64",
		"openbsd/amd64", "netbsd/amd64",
	}
	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{
			"GOOS":        goos,
			"GOARCH":      goarch,
			"CGO_ENABLED": "0",
		}
		if err := sh.RunWith(env, "go", "build", "-o", "/dev/null", "./cmd/gopystyle"); err != nil {
			return fmt.Errorf("build failed for %s: %w", platform, err)
		}
	}
	fmt.Println("✓ All platforms build")
	return nil
}

// Default runs the benchmark suite.
func (Bench) Default() error {
	fmt.Println("Benchmarking...")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-bench=.", "-benchmem",
		"./...",
	)
}

// Compare times gopystyle against pycodestyle over the same tree. Point
// BENCH_CORPUS at a checkout of Python source and have pycodestyle on PATH.
func (Bench) Compare() error {
	st.Deps(Build)

	corpus := os.Getenv("BENCH_CORPUS")
	if corpus == "" {
		return errors.New("set BENCH_CORPUS to a directory of Python source to measure")
	}
	if err := exec.Command("pycodestyle", "--version").Run(); err != nil { //nolint:gosec // args are constant
		return errors.New("pycodestyle not found; install with: pip install pycodestyle")
	}

	fmt.Printf("Comparing over %s...\n", corpus)
	runs := []struct {
		name string
		cmd  []string
	}{
		{"gopystyle", []string{"bin/gopystyle", "check", "--format", "summary", corpus}},
		{"pycodestyle", []string{"pycodestyle", corpus}},
	}
	for _, run := range runs {
		start := time.Now()
		// Both linters exit non-zero when they find issues; only the wall
		// time matters here.
		_, _ = sh.Output(run.cmd[0], run.cmd[1:]...)
		fmt.Printf("  %-12s %s\n", run.name, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// gitOutput returns trimmed stdout from git, or empty when git fails.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags stamps version metadata into the binary.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

// findInstalledBinary resolves where go install put name.
func findInstalledBinary(name string) (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, name), nil
	}
	if gopath := os.Getenv("GOPATH"); gopath != "" {
		return filepath.Join(gopath, "bin", name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, "go", "bin", name), nil
}
