package stage

import (
	"context"
	"time"

	"goqa/internal/errors"
	"goqa/internal/tool"
)

// Bench runs benchmarks with allocation statistics. The -run ^$ filter keeps
// regular tests out of the benchmark run; its pass/fail is independent of the
// test stage.
func Bench(ctx context.Context, env *Env) Result {
	if env.Probe.Check(tool.Go, true) == tool.StatusRequiredAbsent {
		err := errors.Environment("go binary not found in PATH")
		env.Out.StageFailed(NameBench, err)
		return failed(NameBench, "", 0, err)
	}

	env.Out.StageStart(NameBench, env.Cfg.BenchPattern)
	start := time.Now()

	log, err := env.Artifacts.CreateLog("benchmarks")
	if err != nil {
		return failed(NameBench, "", time.Since(start), errors.Wrap(err, "open benchmarks log"))
	}
	defer func() { _ = log.Close() }()

	if err := env.runTool(ctx, log, tool.Go, benchArgs(env)...); err != nil {
		env.Out.StageFailed(NameBench, err)
		return failed(NameBench, log.Name(), time.Since(start), errors.StageError(NameBench, err.Error()))
	}

	env.Out.StageSuccess(NameBench)
	return passed(NameBench, log.Name(), time.Since(start))
}

// benchArgs builds the go test invocation for the benchmark stage.
func benchArgs(env *Env) []string {
	return []string{
		"test",
		"-bench", env.Cfg.BenchPattern,
		"-benchmem",
		"-benchtime", env.Cfg.BenchTime,
		"-run", "^$",
		env.Cfg.Focus,
	}
}
