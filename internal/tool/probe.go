// Package tool probes the environment for the external binaries the pipeline
// invokes. Lookups are cached for the lifetime of a probe, so each stage sees
// a consistent view of the environment.
package tool

import (
	"os/exec"
	"sync"
)

// Well-known collaborator binaries.
const (
	Go           = "go"
	GolangciLint = "golangci-lint"
	Staticcheck  = "staticcheck"
	Govulncheck  = "govulncheck"
)

// Status classifies the availability of a tool for a stage.
type Status int

const (
	// StatusPresent means the tool was found on PATH.
	StatusPresent Status = iota
	// StatusAbsent means an optional tool is missing; the stage soft-skips.
	StatusAbsent
	// StatusRequiredAbsent means a required tool is missing; this is an
	// environment error, not a skip.
	StatusRequiredAbsent
)

// Probe caches PATH lookups for external tools.
type Probe struct {
	mu       sync.Mutex
	cache    map[string]bool
	lookPath func(string) (string, error)
}

// New creates a Probe backed by exec.LookPath.
func New() *Probe {
	return &Probe{
		cache:    make(map[string]bool),
		lookPath: exec.LookPath,
	}
}

// NewWithLookup creates a Probe with a custom lookup function (for testing).
func NewWithLookup(lookPath func(string) (string, error)) *Probe {
	return &Probe{
		cache:    make(map[string]bool),
		lookPath: lookPath,
	}
}

// Available reports whether the named binary is on PATH.
func (p *Probe) Available(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if hit, ok := p.cache[name]; ok {
		return hit
	}
	_, err := p.lookPath(name)
	p.cache[name] = err == nil
	return p.cache[name]
}

// Check returns the tri-state availability of a tool. required marks tools
// whose absence is an environment error rather than a soft skip.
func (p *Probe) Check(name string, required bool) Status {
	if p.Available(name) {
		return StatusPresent
	}
	if required {
		return StatusRequiredAbsent
	}
	return StatusAbsent
}
