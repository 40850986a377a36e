package runner

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"goqa/internal/artifact"
	"goqa/internal/config"
	"goqa/internal/output"
	"goqa/internal/runlog"
	"goqa/internal/stage"
	"goqa/internal/tool"
	"goqa/internal/viewer"
)

func newTestPipeline(t *testing.T, cfg *config.RunConfig) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	env := &stage.Env{
		Cfg:       cfg,
		Artifacts: artifact.New(t.TempDir()),
		Out:       output.NewWithWriters(&buf, &buf, false),
		Probe:     tool.New(),
		WorkDir:   t.TempDir(),
	}
	return New(env, runlog.Nop()), &buf
}

func fakeStage(name string, status stage.Status, calls *[]string) stageEntry {
	return stageEntry{
		name:    name,
		enabled: func(*config.RunConfig) bool { return true },
		run: func(context.Context, *stage.Env) stage.Result {
			*calls = append(*calls, name)
			return stage.Result{Stage: name, Status: status}
		},
	}
}

func TestRun_ExecutesStagesInOrder(t *testing.T) {
	p, _ := newTestPipeline(t, config.Defaults())

	var calls []string
	p.stages = []stageEntry{
		fakeStage("lint", stage.StatusPassed, &calls),
		fakeStage("test", stage.StatusPassed, &calls),
		fakeStage("housekeeping", stage.StatusPassed, &calls),
	}

	result := p.Run(context.Background())

	want := []string{"lint", "test", "housekeeping"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("stage order = %v, want %v", calls, want)
	}
	if !result.Success {
		t.Error("all stages passed, Success should be true")
	}
	if len(result.Results) != 3 {
		t.Errorf("got %d results, want 3", len(result.Results))
	}
}

func TestRun_FailureDoesNotStopPipeline(t *testing.T) {
	p, _ := newTestPipeline(t, config.Defaults())

	var calls []string
	p.stages = []stageEntry{
		fakeStage("lint", stage.StatusFailed, &calls),
		fakeStage("test", stage.StatusPassed, &calls),
	}

	result := p.Run(context.Background())

	if len(calls) != 2 {
		t.Errorf("later stages must still run after a failure, got calls %v", calls)
	}
	if result.Success {
		t.Error("Success should be false when any stage failed")
	}
}

func TestRun_SkippedStageDoesNotFailRun(t *testing.T) {
	p, _ := newTestPipeline(t, config.Defaults())

	var calls []string
	p.stages = []stageEntry{
		fakeStage("vuln", stage.StatusSkipped, &calls),
		fakeStage("test", stage.StatusPassed, &calls),
	}

	if result := p.Run(context.Background()); !result.Success {
		t.Error("a skipped stage must not fail the run")
	}
}

func TestRun_DisabledStageNotExecuted(t *testing.T) {
	cfg := config.Defaults()
	cfg.Lint = false
	p, _ := newTestPipeline(t, cfg)

	var calls []string
	p.stages = []stageEntry{
		{
			name:    "lint",
			enabled: func(c *config.RunConfig) bool { return c.Lint },
			run: func(context.Context, *stage.Env) stage.Result {
				calls = append(calls, "lint")
				return stage.Result{Stage: "lint", Status: stage.StatusPassed}
			},
		},
		fakeStage("test", stage.StatusPassed, &calls),
	}

	result := p.Run(context.Background())

	if strings.Join(calls, ",") != "test" {
		t.Errorf("disabled stage ran, calls = %v", calls)
	}
	if len(result.Results) != 1 {
		t.Errorf("disabled stage must not produce a result, got %d", len(result.Results))
	}
}

func TestRun_CanceledContextStopsSequence(t *testing.T) {
	p, _ := newTestPipeline(t, config.Defaults())

	ctx, cancel := context.WithCancel(context.Background())
	var calls []string
	p.stages = []stageEntry{
		{
			name:    "lint",
			enabled: func(*config.RunConfig) bool { return true },
			run: func(context.Context, *stage.Env) stage.Result {
				calls = append(calls, "lint")
				cancel()
				return stage.Result{Stage: "lint", Status: stage.StatusPassed}
			},
		},
		fakeStage("test", stage.StatusPassed, &calls),
	}

	p.Run(ctx)

	if strings.Join(calls, ",") != "lint" {
		t.Errorf("stages after cancellation must not run, calls = %v", calls)
	}
}

func TestRun_ViewerStartedAfterTestStage(t *testing.T) {
	cfg := config.Defaults()
	cfg.ProfileView = true
	cfg.Focus = "./internal/stage" // single package, profiles apply
	p, _ := newTestPipeline(t, cfg)

	if err := p.env.Artifacts.WriteReport(artifact.CPUProfile, []byte("profile")); err != nil {
		t.Fatal(err)
	}

	var started string
	p.startViewer = func(addr, profile string) (*viewer.Viewer, error) {
		started = addr
		return &viewer.Viewer{}, nil
	}

	var calls []string
	p.stages = []stageEntry{fakeStage(stage.NameTest, stage.StatusPassed, &calls)}

	result := p.Run(context.Background())

	if started != cfg.PprofAddr {
		t.Errorf("viewer started on %q, want %q", started, cfg.PprofAddr)
	}
	if result.Viewer == nil {
		t.Error("RunResult.Viewer should carry the started viewer")
	}
}

func TestRun_ViewerSkippedWithoutProfile(t *testing.T) {
	cfg := config.Defaults()
	cfg.ProfileView = true
	p, buf := newTestPipeline(t, cfg)

	p.startViewer = func(string, string) (*viewer.Viewer, error) {
		t.Fatal("viewer must not start without a CPU profile")
		return nil, nil
	}

	var calls []string
	p.stages = []stageEntry{fakeStage(stage.NameTest, stage.StatusPassed, &calls)}

	result := p.Run(context.Background())

	if result.Viewer != nil {
		t.Error("no viewer expected")
	}
	if !strings.Contains(buf.String(), "no CPU profile") {
		t.Errorf("expected a warning about the missing profile, output:\n%s", buf.String())
	}
}

func TestEnabledNames(t *testing.T) {
	cfg := config.Defaults()
	cfg.Bench = false
	p, _ := newTestPipeline(t, cfg)

	names := p.enabledNames()
	joined := strings.Join(names, ",")
	if strings.Contains(joined, stage.NameBench) {
		t.Errorf("bench disabled but listed: %v", names)
	}
	if !strings.Contains(joined, stage.NameHousekeeping) {
		t.Errorf("housekeeping must always be listed: %v", names)
	}
}

func TestPrintSummary(t *testing.T) {
	result := &RunResult{
		Results: []stage.Result{
			{Stage: "lint", Status: stage.StatusPassed, Duration: 1200 * time.Millisecond},
			{Stage: "vuln", Status: stage.StatusSkipped, Note: "govulncheck not found"},
			{Stage: "test", Status: stage.StatusFailed, Note: "3 passed, 1 failed"},
		},
		Duration: 5 * time.Second,
		Success:  false,
	}

	var buf bytes.Buffer
	out := output.NewWithWriters(&buf, &buf, false)
	PrintSummary(result, out, filepath.Join("qa-artifacts"))

	got := buf.String()
	for _, want := range []string{
		"QA Summary",
		"Lint",
		"govulncheck not found",
		"3 passed, 1 failed",
		"Passed", "lint",
		"Failed", "test",
		"5.0s",
		"qa-artifacts",
		"QA run failed.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSummary_FixedArtifactList(t *testing.T) {
	// The artifact locations are listed even when the run produced nothing,
	// so consumers always know where to look.
	result := &RunResult{Success: true}

	var buf bytes.Buffer
	out := output.NewWithWriters(&buf, &buf, false)
	PrintSummary(result, out, "qa-artifacts")

	got := buf.String()
	for _, name := range artifact.Layout {
		if !strings.Contains(got, filepath.Join("qa-artifacts", name)) {
			t.Errorf("summary missing fixed artifact location %q:\n%s", name, got)
		}
	}
	for _, want := range []string{"cpu.prof", "coverage.html", "vulncheck.log", "benchmarks.log"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1.0s"},
		{30 * time.Second, "30.0s"},
		{time.Minute, "1m0s"},
		{2*time.Minute + 30*time.Second, "2m30s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
