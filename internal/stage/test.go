package stage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"goqa/internal/artifact"
	"goqa/internal/coverage"
	"goqa/internal/errors"
	"goqa/internal/testparser"
	"goqa/internal/tool"
)

// Test runs go test with race detection and coverage against the focus
// target. Single-package targets additionally get CPU/memory/block/mutex
// profiles; the toolchain cannot attribute profiles across packages, so
// multi-package targets omit them. Stale profiling artifacts are cleared
// before the run.
func Test(ctx context.Context, env *Env) Result {
	if env.Probe.Check(tool.Go, true) == tool.StatusRequiredAbsent {
		err := errors.Environment("go binary not found in PATH")
		env.Out.StageFailed(NameTest, err)
		return failed(NameTest, "", 0, err)
	}

	env.Out.StageStart(NameTest, env.Cfg.Focus)
	start := time.Now()

	if err := env.Artifacts.ResetProfiles(); err != nil {
		return failed(NameTest, "", time.Since(start), errors.Wrap(err, "reset stale profiles"))
	}

	log, err := env.Artifacts.CreateLog("tests")
	if err != nil {
		return failed(NameTest, "", time.Since(start), errors.Wrap(err, "open tests log"))
	}
	defer func() { _ = log.Close() }()

	if env.Cfg.MultiPackage() {
		env.Out.Info("focus %s spans multiple packages; profiling disabled", env.Cfg.Focus)
	}

	runErr := env.runTool(ctx, log, tool.Go, testArgs(env)...)

	note := summarizeTests(env)
	reportCoverage(ctx, env, log)

	if runErr != nil {
		stageErr := errors.StageError(NameTest, runErr.Error())
		env.Out.StageFailed(NameTest, runErr)
		res := failed(NameTest, log.Name(), time.Since(start), stageErr)
		res.Note = note
		return res
	}

	env.Out.StageSuccess(NameTest)
	res := passed(NameTest, log.Name(), time.Since(start))
	res.Note = note
	return res
}

// testArgs builds the go test invocation for the configured focus target.
func testArgs(env *Env) []string {
	args := []string{
		"test",
		"-json",
		"-race",
		"-covermode=atomic",
		"-outputdir=" + env.Artifacts.Dir(),
		"-coverprofile=" + artifact.CoverageOut,
		"-timeout=" + env.Cfg.Timeout.String(),
	}
	if env.Cfg.TestPattern != "" {
		args = append(args, "-run", env.Cfg.TestPattern)
	}
	if !env.Cfg.MultiPackage() {
		args = append(args,
			"-cpuprofile="+artifact.CPUProfile,
			"-memprofile="+artifact.MemProfile,
			"-blockprofile="+artifact.BlockProfile,
			"-mutexprofile="+artifact.MutexProfile,
		)
	}
	return append(args, env.Cfg.Focus)
}

// summarizeTests re-reads the captured go test -json stream and prints a
// count summary. Returns a short note for the run summary, empty when the
// output could not be parsed (e.g. a build failure before any test ran).
func summarizeTests(env *Env) string {
	f, err := os.Open(env.Artifacts.LogPath("tests"))
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	counts := testparser.Parse(f)
	if !counts.Parsed {
		return ""
	}

	note := fmt.Sprintf("%d passed", counts.Passed)
	if counts.Failed > 0 {
		note += fmt.Sprintf(", %d failed", counts.Failed)
	}
	if counts.Skipped > 0 {
		note += fmt.Sprintf(", %d skipped", counts.Skipped)
	}

	env.Out.Info("tests: %s (%d total)", note, counts.Total)
	for _, ft := range counts.FailedTests {
		if ft.Reason != "" {
			env.Out.Info("  failed: %s: %s", ft.Name, ft.Reason)
		} else {
			env.Out.Info("  failed: %s", ft.Name)
		}
	}
	return note
}

// reportCoverage turns coverage.out into an HTML report and a one-line
// percentage summary. Report generation problems are warnings, never stage
// failures; the stage result reflects the test runner alone.
func reportCoverage(ctx context.Context, env *Env, log *os.File) {
	if !env.Artifacts.Exists(artifact.CoverageOut) {
		return
	}

	profile := env.Artifacts.Path(artifact.CoverageOut)
	htmlPath := env.Artifacts.Path(artifact.CoverageHTML)

	if err := env.runTool(ctx, log, tool.Go, "tool", "cover", "-html="+profile, "-o", htmlPath); err != nil {
		env.Out.Warning("coverage HTML generation failed: %v", err)
	}

	funcOut, err := env.captureTool(ctx, log, tool.Go, "tool", "cover", "-func="+profile)
	if err != nil {
		env.Out.Warning("coverage summary failed: %v", err)
		return
	}
	if percent, ok := coverage.ParseFuncSummary(bytes.NewReader(funcOut)); ok {
		env.Out.Info("coverage: %.1f%% of statements", percent)
	}

	if env.Cfg.OpenCoverage {
		if err := openFile(htmlPath); err != nil {
			env.Out.Warning("cannot open coverage report: %v", err)
		}
	}
}
