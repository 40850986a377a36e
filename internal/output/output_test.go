package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// newTestWriter creates a Writer with captured output for testing.
func newTestWriter() (*Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	w := &Writer{
		out:   stdout,
		err:   stderr,
		color: false, // Disable color for predictable test output
		quiet: false,
	}
	return w, stdout, stderr
}

func TestNew(t *testing.T) {
	w := New()
	if w == nil {
		t.Fatal("New() returned nil")
	}
	if w.out == nil {
		t.Error("out writer is nil")
	}
	if w.err == nil {
		t.Error("err writer is nil")
	}
}

func TestWriter_SetQuiet(t *testing.T) {
	w, _, _ := newTestWriter()

	w.SetQuiet(true)
	if !w.Quiet() {
		t.Error("SetQuiet(true) did not set quiet")
	}

	w.SetQuiet(false)
	if w.Quiet() {
		t.Error("SetQuiet(false) did not unset quiet")
	}
}

func TestWriter_SetColor(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.SetColor(true)
	w.Success("ok")
	if !strings.Contains(stdout.String(), "\033[32m") {
		t.Error("colored Success should contain green escape code")
	}

	stdout.Reset()
	w.SetColor(false)
	w.Success("ok")
	if strings.Contains(stdout.String(), "\033[") {
		t.Error("plain Success should not contain escape codes")
	}
}

func TestWriter_Info_Quiet(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.SetQuiet(true)
	w.Info("should not appear")
	if stdout.Len() != 0 {
		t.Errorf("quiet Info produced output: %q", stdout.String())
	}

	w.SetQuiet(false)
	w.Info("visible")
	if !strings.Contains(stdout.String(), "visible") {
		t.Error("Info output missing")
	}
}

func TestWriter_Warning(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.Warning("tool %s missing", "govulncheck")

	if stdout.Len() != 0 {
		t.Error("Warning should write to stderr, not stdout")
	}
	want := "warning: tool govulncheck missing\n"
	if stderr.String() != want {
		t.Errorf("Warning output = %q, want %q", stderr.String(), want)
	}
}

func TestWriter_ErrorPrefix(t *testing.T) {
	w, _, stderr := newTestWriter()

	w.ErrorPrefix("unknown flag: %s", "--bogus")

	want := "goqa: unknown flag: --bogus\n"
	if stderr.String() != want {
		t.Errorf("ErrorPrefix output = %q, want %q", stderr.String(), want)
	}
}

func TestWriter_StageLifecycle(t *testing.T) {
	w, stdout, stderr := newTestWriter()

	w.StageStart("lint", "./...")
	w.StageSuccess("lint")
	w.StageFailed("test", errors.New("exit status 1"))
	w.StageSkipped("vuln", "govulncheck not found")

	out := stdout.String()
	if !strings.Contains(out, "─── lint (./...) ───") {
		t.Errorf("StageStart header missing: %q", out)
	}
	if !strings.Contains(out, "[lint] passed") {
		t.Errorf("StageSuccess line missing: %q", out)
	}
	if !strings.Contains(out, "[vuln] skipped: govulncheck not found") {
		t.Errorf("StageSkipped line missing: %q", out)
	}
	if !strings.Contains(stderr.String(), "[test] failed: exit status 1") {
		t.Errorf("StageFailed line missing: %q", stderr.String())
	}
}

func TestWriter_StageStart_Quiet(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.SetQuiet(true)

	w.StageStart("lint", "")
	w.StageSuccess("lint")
	w.StageSkipped("vuln", "absent")

	if stdout.Len() != 0 {
		t.Errorf("quiet mode produced stage output: %q", stdout.String())
	}
}

func TestWriter_SummaryAction(t *testing.T) {
	tests := []struct {
		name     string
		success  bool
		note     string
		contains []string
	}{
		{"passed", true, "", []string{"+ lint"}},
		{"failed with note", false, "exit status 1", []string{"x lint", "(exit status 1)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, stdout, _ := newTestWriter()
			w.SummaryAction("lint", tt.success, "1.2s", tt.note)
			for _, want := range tt.contains {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("SummaryAction output %q missing %q", stdout.String(), want)
				}
			}
		})
	}
}

func TestWriter_SummarySkipped(t *testing.T) {
	w, stdout, _ := newTestWriter()
	w.SummarySkipped("vuln", "tool absent")
	if !strings.Contains(stdout.String(), "vuln") || !strings.Contains(stdout.String(), "skipped (tool absent)") {
		t.Errorf("SummarySkipped output = %q", stdout.String())
	}
}

func TestWriter_FinalMessages(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.FinalSuccess("All stages passed in %s.", "1m3s")
	w.FinalFailure("1 stage failed.")

	out := stdout.String()
	if !strings.Contains(out, "All stages passed in 1m3s.") {
		t.Errorf("FinalSuccess missing: %q", out)
	}
	if !strings.Contains(out, "1 stage failed.") {
		t.Errorf("FinalFailure missing: %q", out)
	}
}

func TestWriter_HelpFlag_Alignment(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.HelpFlag("--no-lint", "disable the lint stage", 16)

	want := "  --no-lint         disable the lint stage\n"
	if stdout.String() != want {
		t.Errorf("HelpFlag output = %q, want %q", stdout.String(), want)
	}
}

func TestWriter_PhaseHeader(t *testing.T) {
	w, stdout, _ := newTestWriter()

	w.PhaseHeader("QA run (focus ./...)")
	if !strings.Contains(stdout.String(), "=== QA run (focus ./...) ===") {
		t.Errorf("PhaseHeader output = %q", stdout.String())
	}

	stdout.Reset()
	w.SetQuiet(true)
	w.PhaseHeader("QA run")
	if stdout.String() != "" {
		t.Errorf("PhaseHeader should be silent in quiet mode, got %q", stdout.String())
	}
}
