// Package artifact owns the fixed-layout output directory every stage writes
// into. The directory is created idempotently at startup, log files are
// overwritten on every run, and stale profiling data is cleared before a fresh
// test run.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"goqa/internal/errors"
)

// DefaultDir is the artifacts directory, relative to the working directory.
const DefaultDir = "qa-artifacts"

// Fixed artifact file names.
const (
	CoverageOut  = "coverage.out"
	CoverageHTML = "coverage.html"
	CPUProfile   = "cpu.prof"
	MemProfile   = "mem.prof"
	BlockProfile = "block.prof"
	MutexProfile = "mutex.prof"
	RunLog       = "run.json"
	LargeFiles   = "large-files.txt"
	Todos        = "todos.txt"
)

// Layout is the fixed set of artifact locations the summary reports after
// every run, whether or not each file was actually produced.
var Layout = []string{
	"lint.log",
	"vet.log",
	"staticcheck.log",
	"vulncheck.log",
	"tests.log",
	"benchmarks.log",
	CoverageOut,
	CoverageHTML,
	CPUProfile,
	MemProfile,
	BlockProfile,
	MutexProfile,
	RunLog,
	LargeFiles,
	Todos,
}

// profileArtifacts are the members reset before each test run so a run never
// reports profiling data from a previous invocation.
var profileArtifacts = []string{
	CoverageOut,
	CoverageHTML,
	CPUProfile,
	MemProfile,
	BlockProfile,
	MutexProfile,
}

// Artifact describes one file in the output directory.
type Artifact struct {
	Name string
	Size int64
}

// Manager resolves artifact paths under a single output directory.
type Manager struct {
	dir string
}

// New creates a Manager rooted at dir. An empty dir selects DefaultDir.
func New(dir string) *Manager {
	if dir == "" {
		dir = DefaultDir
	}
	return &Manager{dir: dir}
}

// Dir returns the output directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// EnsureDir creates the output directory if absent. Inability to create it is
// a fatal startup condition.
func (m *Manager) EnsureDir() error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return errors.Environmentf("cannot create artifact directory %s: %v", m.dir, err)
	}
	return nil
}

// Path returns the path of a named artifact inside the output directory.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, name)
}

// LogPath returns the log file path for a stage.
func (m *Manager) LogPath(stage string) string {
	return m.Path(stage + ".log")
}

// CreateLog opens (truncating) the log file for a stage.
func (m *Manager) CreateLog(stage string) (*os.File, error) {
	f, err := os.Create(m.LogPath(stage))
	if err != nil {
		return nil, fmt.Errorf("create log for %s: %w", stage, err)
	}
	return f, nil
}

// WriteReport overwrites a named report file with content.
func (m *Manager) WriteReport(name string, content []byte) error {
	return os.WriteFile(m.Path(name), content, 0644)
}

// ResetProfiles removes coverage and profiling artifacts left over from a
// previous run. Missing files are not an error.
func (m *Manager) ResetProfiles() error {
	for _, name := range profileArtifacts {
		if err := os.Remove(m.Path(name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale artifact %s: %w", name, err)
		}
	}
	return nil
}

// Exists reports whether a named artifact is present.
func (m *Manager) Exists(name string) bool {
	fi, err := os.Stat(m.Path(name))
	return err == nil && !fi.IsDir()
}

// List returns the artifacts currently in the output directory, sorted by name.
func (m *Manager) List() ([]Artifact, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read artifact directory: %w", err)
	}

	var artifacts []Artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, Artifact{Name: e.Name(), Size: info.Size()})
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Name < artifacts[j].Name })
	return artifacts, nil
}
