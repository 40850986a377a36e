// Package config builds the immutable run configuration for a goqa invocation.
//
// Values are layered in increasing precedence: built-in defaults, the optional
// .goqa.yml project file, GOQA_* environment variables (a .env file is honored),
// and finally command-line flags. The resulting RunConfig is never mutated after
// Build returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project configuration file.
const FileName = ".goqa.yml"

// RunConfig is the complete, immutable configuration for one run.
type RunConfig struct {
	// Per-stage enable flags.
	Lint   bool
	Static bool
	Vuln   bool
	Test   bool
	Bench  bool

	Focus        string // package selector, default "./..."
	TestPattern  string // go test -run filter, empty = all
	BenchPattern string // go test -bench filter
	BenchTime    string // go test -benchtime value
	Timeout      time.Duration

	ProfileView  bool
	OpenCoverage bool
	CIMode       bool
	Quiet        bool
	PprofAddr    string
}

// MultiPackage reports whether the focus target denotes multiple packages.
// The go toolchain cannot attribute profiles across packages in one run, so
// the test stage omits profiling flags for such targets.
func (c *RunConfig) MultiPackage() bool {
	return strings.Contains(c.Focus, "...")
}

// FileConfig mirrors the .goqa.yml layout. Pointer fields distinguish
// "not set" from an explicit false.
type FileConfig struct {
	Focus        string       `yaml:"focus"`
	Timeout      string       `yaml:"timeout"`
	TestPattern  string       `yaml:"test_pattern"`
	BenchPattern string       `yaml:"bench_pattern"`
	BenchTime    string       `yaml:"bench_time"`
	PprofAddr    string       `yaml:"pprof_addr"`
	CIMode       *bool        `yaml:"ci_mode"`
	OpenCoverage *bool        `yaml:"open_coverage"`
	ProfileView  *bool        `yaml:"profile_view"`
	Stages       StagesConfig `yaml:"stages"`
}

// StagesConfig holds per-stage enable switches from the config file.
type StagesConfig struct {
	Lint   *bool `yaml:"lint"`
	Static *bool `yaml:"static"`
	Vuln   *bool `yaml:"vuln"`
	Test   *bool `yaml:"test"`
	Bench  *bool `yaml:"bench"`
}

// Overrides carries flag-level settings from the CLI. Pointer and presence
// semantics match the flag table: a nil pointer means the flag was absent.
type Overrides struct {
	NoLint   bool
	NoStatic bool
	NoVuln   bool
	NoTest   bool
	NoBench  bool

	Focus     *string
	TestOnly  *string
	BenchOnly *string
	Timeout   *time.Duration

	ProfileView  bool
	OpenCoverage bool
	CIMode       bool
	Quiet        bool
}

// Build layers defaults, the project file, environment variables, and flag
// overrides into a RunConfig. dir is the working directory the project file
// and .env are resolved against.
func Build(dir string, ovr Overrides) (*RunConfig, error) {
	cfg := Defaults()

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	if err := applyFile(cfg, dir); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyOverrides(cfg, ovr)

	return cfg, nil
}

// applyFile merges the optional .goqa.yml into cfg.
func applyFile(cfg *RunConfig, dir string) error {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", FileName, err)
	}

	fc, err := ParseFile(data)
	if err != nil {
		return fmt.Errorf("%s: %w", FileName, err)
	}

	if fc.Focus != "" {
		cfg.Focus = fc.Focus
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("%s: invalid timeout %q: %w", FileName, fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	if fc.TestPattern != "" {
		cfg.TestPattern = fc.TestPattern
	}
	if fc.BenchPattern != "" {
		cfg.BenchPattern = fc.BenchPattern
	}
	if fc.BenchTime != "" {
		cfg.BenchTime = fc.BenchTime
	}
	if fc.PprofAddr != "" {
		cfg.PprofAddr = fc.PprofAddr
	}
	if fc.CIMode != nil {
		cfg.CIMode = *fc.CIMode
	}
	if fc.OpenCoverage != nil {
		cfg.OpenCoverage = *fc.OpenCoverage
	}
	if fc.ProfileView != nil {
		cfg.ProfileView = *fc.ProfileView
	}
	if fc.Stages.Lint != nil {
		cfg.Lint = *fc.Stages.Lint
	}
	if fc.Stages.Static != nil {
		cfg.Static = *fc.Stages.Static
	}
	if fc.Stages.Vuln != nil {
		cfg.Vuln = *fc.Stages.Vuln
	}
	if fc.Stages.Test != nil {
		cfg.Test = *fc.Stages.Test
	}
	if fc.Stages.Bench != nil {
		cfg.Bench = *fc.Stages.Bench
	}

	return nil
}

// ParseFile validates raw .goqa.yml content against the embedded schema and
// unmarshals it.
func ParseFile(data []byte) (*FileConfig, error) {
	if err := ValidateFile(data); err != nil {
		return nil, err
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &fc, nil
}

// applyEnv merges GOQA_* environment variables into cfg.
func applyEnv(cfg *RunConfig) error {
	if v := os.Getenv("GOQA_FOCUS"); v != "" {
		cfg.Focus = v
	}
	if v := os.Getenv("GOQA_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GOQA_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("GOQA_CI_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GOQA_CI_MODE %q: %w", v, err)
		}
		cfg.CIMode = b
	}
	return nil
}

// applyOverrides merges flag-level settings into cfg. Flags always win.
func applyOverrides(cfg *RunConfig, ovr Overrides) {
	if ovr.NoLint {
		cfg.Lint = false
	}
	if ovr.NoStatic {
		cfg.Static = false
	}
	if ovr.NoVuln {
		cfg.Vuln = false
	}
	if ovr.NoTest {
		cfg.Test = false
	}
	if ovr.NoBench {
		cfg.Bench = false
	}
	if ovr.Focus != nil {
		cfg.Focus = *ovr.Focus
	}
	if ovr.TestOnly != nil {
		cfg.TestPattern = *ovr.TestOnly
	}
	if ovr.BenchOnly != nil {
		cfg.BenchPattern = *ovr.BenchOnly
	}
	if ovr.Timeout != nil {
		cfg.Timeout = *ovr.Timeout
	}
	if ovr.ProfileView {
		cfg.ProfileView = true
	}
	if ovr.OpenCoverage {
		cfg.OpenCoverage = true
	}
	if ovr.CIMode {
		cfg.CIMode = true
	}
	if ovr.Quiet {
		cfg.Quiet = true
	}
}
