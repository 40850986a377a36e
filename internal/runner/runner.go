// Package runner sequences the QA stages, aggregates their results, and
// reports the run summary.
package runner

import (
	"context"
	"time"

	"goqa/internal/artifact"
	"goqa/internal/config"
	"goqa/internal/runlog"
	"goqa/internal/stage"
	"goqa/internal/viewer"
)

// StageFunc executes one pipeline stage.
type StageFunc func(ctx context.Context, env *stage.Env) stage.Result

type stageEntry struct {
	name    string
	enabled func(cfg *config.RunConfig) bool
	run     StageFunc
}

// Pipeline executes the configured stages in fixed order. Housekeeping always
// runs last and is advisory.
type Pipeline struct {
	env         *stage.Env
	log         *runlog.Logger
	stages      []stageEntry
	startViewer func(addr, profile string) (*viewer.Viewer, error)
}

// New builds a Pipeline over env writing stage outcomes to log.
func New(env *stage.Env, log *runlog.Logger) *Pipeline {
	return &Pipeline{
		env: env,
		log: log,
		stages: []stageEntry{
			{stage.NameLint, func(c *config.RunConfig) bool { return c.Lint }, stage.Lint},
			{stage.NameStatic, func(c *config.RunConfig) bool { return c.Static }, stage.Static},
			{stage.NameVuln, func(c *config.RunConfig) bool { return c.Vuln }, stage.Vuln},
			{stage.NameTest, func(c *config.RunConfig) bool { return c.Test }, stage.Test},
			{stage.NameBench, func(c *config.RunConfig) bool { return c.Bench }, stage.Bench},
			{stage.NameHousekeeping, func(*config.RunConfig) bool { return true }, stage.Housekeeping},
		},
		startViewer: viewer.Start,
	}
}

// RunResult aggregates the outcome of one pipeline run.
type RunResult struct {
	Results   []stage.Result
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Success   bool
	Viewer    *viewer.Viewer // non-nil when the profile viewer was started
}

// Run executes all enabled stages in order. Failures do not stop the
// pipeline; every enabled stage gets its chance to run so one broken stage
// does not hide the others. A canceled context stops the sequence.
func (p *Pipeline) Run(ctx context.Context) *RunResult {
	result := &RunResult{
		StartTime: time.Now(),
		Success:   true,
	}

	p.log.RunStarted(p.env.Cfg.Focus, p.enabledNames())

	for _, entry := range p.stages {
		if ctx.Err() != nil {
			break
		}
		if !entry.enabled(p.env.Cfg) {
			continue
		}

		res := entry.run(ctx, p.env)
		result.Results = append(result.Results, res)
		p.log.StageFinished(res)

		if res.Status == stage.StatusFailed {
			result.Success = false
		}
		if res.Stage == stage.NameTest {
			p.maybeStartViewer(result)
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	p.log.RunFinished(result.Success, result.Duration)

	return result
}

// maybeStartViewer launches the pprof web UI after the test stage when
// requested and a CPU profile was produced. Viewer problems never affect the
// run outcome.
func (p *Pipeline) maybeStartViewer(result *RunResult) {
	cfg := p.env.Cfg
	if !cfg.ProfileView {
		return
	}
	if !p.env.Artifacts.Exists(artifact.CPUProfile) {
		p.env.Out.Warning("no CPU profile captured, skipping profile viewer")
		return
	}

	v, err := p.startViewer(cfg.PprofAddr, p.env.Artifacts.Path(artifact.CPUProfile))
	if err != nil {
		p.env.Out.Warning("cannot start profile viewer: %v", err)
		return
	}
	result.Viewer = v
	p.env.Out.Info("profile viewer listening on http://%s", v.Addr())
}

func (p *Pipeline) enabledNames() []string {
	var names []string
	for _, entry := range p.stages {
		if entry.enabled(p.env.Cfg) {
			names = append(names, entry.name)
		}
	}
	return names
}
