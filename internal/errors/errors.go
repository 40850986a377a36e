// Package errors provides structured error types and exit codes for goqa.
package errors

import (
	"fmt"
)

// Exit codes. The CLI contract is deliberately binary: any failure, whether a
// bad flag, a broken environment, or a failed stage, exits 1.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindEnvironment
)

// QAError is the base error type for goqa.
type QAError struct {
	Kind    ErrorKind
	Message string
	Stage   string // Stage name if applicable
	Cause   error  // Underlying error
}

func (e *QAError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
	}
	return e.Message
}

func (e *QAError) Unwrap() error {
	return e.Cause
}

// New creates a new runtime error.
func New(message string) *QAError {
	return &QAError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *QAError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *QAError {
	return &QAError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *QAError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *QAError {
	return &QAError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *QAError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *QAError {
	return &QAError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// StageError creates an error for a specific stage.
func StageError(stage, message string) *QAError {
	return &QAError{
		Kind:    KindRuntime,
		Stage:   stage,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *QAError {
	return &QAError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
