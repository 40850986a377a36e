// Package cli provides the command-line interface for goqa.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"goqa/internal/artifact"
	"goqa/internal/config"
	"goqa/internal/errors"
	"goqa/internal/output"
	"goqa/internal/runlog"
	"goqa/internal/runner"
	"goqa/internal/stage"
	"goqa/internal/tool"
)

// Version is set at build time.
var Version = "dev"

var out = output.New()

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			printUsage()
			return 0
		case "--version", "version":
			out.Println("goqa %s", Version)
			return 0
		case "serve":
			return cmdServe(args[1:])
		}
	}

	ovr, err := parseFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		out.Hint("run 'goqa --help' for usage")
		return 1
	}

	return runPipeline(ovr)
}

// runPipeline builds the configuration and executes the QA stages.
func runPipeline(ovr *config.Overrides) int {
	workDir, err := os.Getwd()
	if err != nil {
		out.ErrorPrefix("cannot determine working directory: %v", err)
		return 1
	}

	cfg, err := config.Build(workDir, *ovr)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	out.SetQuiet(cfg.Quiet)
	if cfg.CIMode {
		out.SetColor(false)
	}
	out.PhaseHeader(fmt.Sprintf("QA run (focus %s)", cfg.Focus))

	artifacts := artifact.New(artifact.DefaultDir)
	if err := artifacts.EnsureDir(); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	log, err := runlog.New(artifacts.Path(artifact.RunLog))
	if err != nil {
		out.Warning("run log unavailable: %v", err)
		log = runlog.Nop()
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &stage.Env{
		Cfg:       cfg,
		Artifacts: artifacts,
		Out:       out,
		Probe:     tool.New(),
		WorkDir:   workDir,
	}

	result := runner.New(env, log).Run(ctx)
	runner.PrintSummary(result, out, artifacts.Dir())

	return finishRun(ctx, result)
}

// finishRun terminates the background profile viewer and maps the aggregate
// result to the process exit code. The viewer runs only for the remainder of
// the pipeline; it never outlives the process and never influences the exit
// code.
func finishRun(ctx context.Context, result *runner.RunResult) int {
	if result.Viewer != nil {
		result.Viewer.Stop()
	}
	if ctx.Err() != nil {
		out.Errorln("interrupted")
		return 1
	}
	if !result.Success {
		return 1
	}
	return 0
}

// parseFlags manually parses the run flags.
//
// Manual parsing is used instead of the stdlib flag package because unknown
// flags must abort before any stage or artifact side effect, duplicated flags
// follow last-wins semantics, and the error messages carry usage hints.
func parseFlags(args []string) (*config.Overrides, error) {
	ovr := &config.Overrides{}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "--no-lint":
			ovr.NoLint = true
			i++
		case arg == "--no-static":
			ovr.NoStatic = true
			i++
		case arg == "--no-vuln":
			ovr.NoVuln = true
			i++
		case arg == "--no-test":
			ovr.NoTest = true
			i++
		case arg == "--no-bench":
			ovr.NoBench = true
			i++
		case arg == "--profile-view":
			ovr.ProfileView = true
			i++
		case arg == "--open-coverage":
			ovr.OpenCoverage = true
			i++
		case arg == "--ci-mode":
			ovr.CIMode = true
			i++
		case arg == "-q" || arg == "--quiet":
			ovr.Quiet = true
			i++
		case arg == "--focus" || strings.HasPrefix(arg, "--focus="):
			v, n, err := flagValue(args, i, "--focus")
			if err != nil {
				return nil, err
			}
			ovr.Focus = &v
			i = n
		case arg == "--test-only" || strings.HasPrefix(arg, "--test-only="):
			v, n, err := flagValue(args, i, "--test-only")
			if err != nil {
				return nil, err
			}
			ovr.TestOnly = &v
			i = n
		case arg == "--bench-only" || strings.HasPrefix(arg, "--bench-only="):
			v, n, err := flagValue(args, i, "--bench-only")
			if err != nil {
				return nil, err
			}
			ovr.BenchOnly = &v
			i = n
		case arg == "--timeout" || strings.HasPrefix(arg, "--timeout="):
			v, n, err := flagValue(args, i, "--timeout")
			if err != nil {
				return nil, err
			}
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("invalid --timeout value %q: %w", v, err)
			}
			ovr.Timeout = &d
			i = n
		default:
			return nil, fmt.Errorf("unknown flag %q", arg)
		}
	}

	return ovr, nil
}

// flagValue extracts the value of a flag at position i, supporting both
// "--flag=value" and "--flag value". Returns the value and the next position.
func flagValue(args []string, i int, name string) (string, int, error) {
	arg := args[i]
	if strings.HasPrefix(arg, name+"=") {
		v := strings.TrimPrefix(arg, name+"=")
		if v == "" {
			return "", 0, fmt.Errorf("%s requires a value", name)
		}
		return v, i + 1, nil
	}
	if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
		return "", 0, fmt.Errorf("%s requires a value", name)
	}
	return args[i+1], i + 2, nil
}

func printUsage() {
	out.HelpTitle("goqa - Go quality assurance pipeline")

	out.HelpSection("Usage:")
	out.HelpUsage("goqa [flags]           Run the QA pipeline in the current module")
	out.HelpUsage("goqa serve [--addr=X]  Serve the artifact directory over HTTP")
	out.HelpUsage("goqa version           Show version information")

	out.HelpSection("Stage Flags:")
	out.HelpFlag("--no-lint", "Skip golangci-lint", widthFlag)
	out.HelpFlag("--no-static", "Skip go vet and staticcheck", widthFlag)
	out.HelpFlag("--no-vuln", "Skip govulncheck", widthFlag)
	out.HelpFlag("--no-test", "Skip tests, coverage, and profiling", widthFlag)
	out.HelpFlag("--no-bench", "Skip benchmarks", widthFlag)

	out.HelpSection("Run Flags:")
	out.HelpFlag("--focus=<pkg>", "Package selector (default ./...)", widthFlag)
	out.HelpFlag("--test-only=<pattern>", "Run only tests matching the pattern", widthFlag)
	out.HelpFlag("--bench-only=<pattern>", "Run only benchmarks matching the pattern", widthFlag)
	out.HelpFlag("--timeout=<duration>", "Per-stage test timeout (default 2m)", widthFlag)
	out.HelpFlag("--profile-view", "Open the pprof web UI after the test stage", widthFlag)
	out.HelpFlag("--open-coverage", "Open the HTML coverage report", widthFlag)
	out.HelpFlag("--ci-mode", "Plain output for CI environments", widthFlag)
	out.HelpFlag("-q, --quiet", "Suppress tool output, keep the summary", widthFlag)
	out.HelpFlag("-h, --help", "Show this help", widthFlag)

	out.HelpSection("Environment:")
	out.HelpFlag("GOQA_FOCUS", "Default package selector", widthFlag)
	out.HelpFlag("GOQA_TIMEOUT", "Default test timeout", widthFlag)
	out.HelpFlag("GOQA_CI_MODE", "Force CI mode (true/false)", widthFlag)

	out.HelpSection("Examples:")
	out.HelpExample("goqa", "Full pipeline on ./...")
	out.HelpExample("goqa --focus=./internal/parser --profile-view", "Profile one package")
	out.HelpExample("goqa --no-bench --ci-mode", "CI run without benchmarks")
	out.Println("")
}

const widthFlag = 24
