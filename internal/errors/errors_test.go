package errors

import (
	"errors"
	"testing"
)

func TestQAError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *QAError
		expected string
	}{
		{
			name:     "message only",
			err:      &QAError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with stage",
			err:      &QAError{Stage: "lint", Message: "tool exited with status 1"},
			expected: "[lint] tool exited with status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestQAError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &QAError{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &QAError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestErrorsIs(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := Wrap(cause, "context")

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *QAError
		kind ErrorKind
	}{
		{"New", New("x"), KindRuntime},
		{"Newf", Newf("x %d", 1), KindRuntime},
		{"Config", Config("x"), KindConfig},
		{"Configf", Configf("x %s", "y"), KindConfig},
		{"Environment", Environment("x"), KindEnvironment},
		{"Environmentf", Environmentf("x %s", "y"), KindEnvironment},
		{"NotFound", NotFound("tool", "golangci-lint"), KindNotFound},
		{"StageError", StageError("test", "failed"), KindRuntime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("tool", "govulncheck")
	want := "tool not found: govulncheck"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"runtime error", New("failed"), ExitFailure},
		{"config error", Config("bad flag"), ExitFailure},
		{"environment error", Environment("no go binary"), ExitFailure},
		{"plain error", errors.New("plain"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
