package stage

import (
	"context"
	"time"

	"goqa/internal/errors"
	"goqa/internal/tool"
)

// Lint runs golangci-lint against the focus target. A missing linter is a
// soft skip; a non-zero exit is a stage failure.
func Lint(ctx context.Context, env *Env) Result {
	if env.Probe.Check(tool.GolangciLint, false) == tool.StatusAbsent {
		env.Out.Warning("golangci-lint not found, skipping lint stage")
		return skipped(NameLint, "golangci-lint not found")
	}

	env.Out.StageStart(NameLint, env.Cfg.Focus)
	start := time.Now()

	log, err := env.Artifacts.CreateLog(NameLint)
	if err != nil {
		return failed(NameLint, "", time.Since(start), errors.Wrap(err, "open lint log"))
	}
	defer func() { _ = log.Close() }()

	if err := env.runTool(ctx, log, tool.GolangciLint, "run", env.Cfg.Focus); err != nil {
		env.Out.StageFailed(NameLint, err)
		return failed(NameLint, log.Name(), time.Since(start), errors.StageError(NameLint, err.Error()))
	}

	env.Out.StageSuccess(NameLint)
	return passed(NameLint, log.Name(), time.Since(start))
}
