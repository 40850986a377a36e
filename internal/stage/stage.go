// Package stage implements the pipeline stages: lint, static analysis,
// vulnerability scan, test, benchmark, and housekeeping. Each stage invokes
// external tools, tees their output to the console and a per-stage log file,
// and classifies the outcome.
package stage

import (
	"time"

	"goqa/internal/artifact"
	"goqa/internal/config"
	"goqa/internal/output"
	"goqa/internal/tool"
)

// Stage names. Log files derive from these (plus vet/staticcheck/vulncheck,
// which keep their tool names).
const (
	NameLint         = "lint"
	NameStatic       = "static"
	NameVuln         = "vuln"
	NameTest         = "test"
	NameBench        = "bench"
	NameHousekeeping = "housekeeping"
)

// Status is the lifecycle state of a stage.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusPassed
	StatusFailed
	StatusSkipped
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result records the outcome of one executed stage. Results are never mutated
// after creation.
type Result struct {
	Stage    string
	Status   Status
	LogPath  string // primary captured log, empty when skipped
	Duration time.Duration
	Err      error  // failure cause, nil unless StatusFailed
	Note     string // human-readable detail (skip reason, test counts, ...)
}

// Env carries the shared collaborators stages run against.
type Env struct {
	Cfg       *config.RunConfig
	Artifacts *artifact.Manager
	Out       *output.Writer
	Probe     *tool.Probe
	WorkDir   string // working directory external commands run in
}

func passed(name, logPath string, d time.Duration) Result {
	return Result{Stage: name, Status: StatusPassed, LogPath: logPath, Duration: d}
}

func failed(name, logPath string, d time.Duration, err error) Result {
	return Result{Stage: name, Status: StatusFailed, LogPath: logPath, Duration: d, Err: err}
}

func skipped(name, reason string) Result {
	return Result{Stage: name, Status: StatusSkipped, Note: reason}
}
