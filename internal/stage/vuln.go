package stage

import (
	"context"
	"time"

	"goqa/internal/errors"
	"goqa/internal/tool"
)

// Vuln runs govulncheck against the focus target. The scanner is optional:
// absence soft-skips the stage without affecting the aggregate result.
func Vuln(ctx context.Context, env *Env) Result {
	if env.Probe.Check(tool.Govulncheck, false) == tool.StatusAbsent {
		env.Out.Warning("govulncheck not found, skipping vulnerability scan")
		return skipped(NameVuln, "govulncheck not found")
	}

	env.Out.StageStart(NameVuln, env.Cfg.Focus)
	start := time.Now()

	log, err := env.Artifacts.CreateLog("vulncheck")
	if err != nil {
		return failed(NameVuln, "", time.Since(start), errors.Wrap(err, "open vulncheck log"))
	}
	defer func() { _ = log.Close() }()

	if err := env.runTool(ctx, log, tool.Govulncheck, env.Cfg.Focus); err != nil {
		env.Out.StageFailed(NameVuln, err)
		return failed(NameVuln, log.Name(), time.Since(start), errors.StageError(NameVuln, err.Error()))
	}

	env.Out.StageSuccess(NameVuln)
	return passed(NameVuln, log.Name(), time.Since(start))
}
