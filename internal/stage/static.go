package stage

import (
	"context"
	"time"

	"goqa/internal/errors"
	"goqa/internal/tool"
)

// Static runs go vet and, when present, staticcheck against the focus target.
// Either tool failing marks the stage failed. vet ships with the go toolchain,
// so a missing go binary is an environment error rather than a skip.
func Static(ctx context.Context, env *Env) Result {
	if env.Probe.Check(tool.Go, true) == tool.StatusRequiredAbsent {
		err := errors.Environment("go binary not found in PATH")
		env.Out.StageFailed(NameStatic, err)
		return failed(NameStatic, "", 0, err)
	}

	env.Out.StageStart(NameStatic, env.Cfg.Focus)
	start := time.Now()

	vetLog, err := env.Artifacts.CreateLog("vet")
	if err != nil {
		return failed(NameStatic, "", time.Since(start), errors.Wrap(err, "open vet log"))
	}
	defer func() { _ = vetLog.Close() }()

	var firstErr error
	if err := env.runTool(ctx, vetLog, tool.Go, "vet", env.Cfg.Focus); err != nil {
		firstErr = errors.StageError(NameStatic, "go vet: "+err.Error())
	}

	if env.Probe.Available(tool.Staticcheck) {
		scLog, err := env.Artifacts.CreateLog("staticcheck")
		if err != nil {
			return failed(NameStatic, vetLog.Name(), time.Since(start), errors.Wrap(err, "open staticcheck log"))
		}
		defer func() { _ = scLog.Close() }()

		if err := env.runTool(ctx, scLog, tool.Staticcheck, env.Cfg.Focus); err != nil && firstErr == nil {
			firstErr = errors.StageError(NameStatic, "staticcheck: "+err.Error())
		}
	} else {
		env.Out.Info("staticcheck not found, running go vet only")
	}

	if firstErr != nil {
		env.Out.StageFailed(NameStatic, firstErr)
		return failed(NameStatic, vetLog.Name(), time.Since(start), firstErr)
	}

	env.Out.StageSuccess(NameStatic)
	return passed(NameStatic, vetLog.Name(), time.Since(start))
}
