package config

import "time"

// Built-in defaults applied before any file, environment, or flag value.
const (
	DefaultFocus        = "./..."
	DefaultTimeout      = 2 * time.Minute
	DefaultBenchPattern = "."
	DefaultBenchTime    = "1s"
	DefaultPprofAddr    = "localhost:8081"
)

// Defaults returns a RunConfig with every stage enabled and default values set.
func Defaults() *RunConfig {
	return &RunConfig{
		Lint:         true,
		Static:       true,
		Vuln:         true,
		Test:         true,
		Bench:        true,
		Focus:        DefaultFocus,
		BenchPattern: DefaultBenchPattern,
		BenchTime:    DefaultBenchTime,
		Timeout:      DefaultTimeout,
		PprofAddr:    DefaultPprofAddr,
	}
}
