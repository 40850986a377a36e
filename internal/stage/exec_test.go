package stage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"goqa/internal/tool"
)

// The go binary is guaranteed to exist in the test environment, so it doubles
// as the external tool under test.

func TestRunTool_WritesLog(t *testing.T) {
	env, _, _ := newTestEnv(t, tool.Go)
	env.Cfg.Quiet = true // keep test output clean

	var log bytes.Buffer
	if err := env.runTool(context.Background(), &log, "go", "env", "GOOS"); err != nil {
		t.Fatalf("runTool() error = %v", err)
	}

	if strings.TrimSpace(log.String()) == "" {
		t.Error("log should contain the command output")
	}
}

func TestRunTool_NonZeroExit(t *testing.T) {
	env, _, _ := newTestEnv(t, tool.Go)
	env.Cfg.Quiet = true

	var log bytes.Buffer
	err := env.runTool(context.Background(), &log, "go", "definitely-not-a-subcommand")
	if err == nil {
		t.Fatal("runTool() should report a non-zero exit")
	}
}

func TestRunTool_MissingBinary(t *testing.T) {
	env, _, _ := newTestEnv(t)
	env.Cfg.Quiet = true

	var log bytes.Buffer
	err := env.runTool(context.Background(), &log, "definitely-not-a-real-binary-4af1")
	if err == nil {
		t.Fatal("runTool() should fail for a missing binary")
	}
}

func TestCaptureTool(t *testing.T) {
	env, _, _ := newTestEnv(t, tool.Go)

	var log bytes.Buffer
	out, err := env.captureTool(context.Background(), &log, "go", "env", "GOOS")
	if err != nil {
		t.Fatalf("captureTool() error = %v", err)
	}

	if strings.TrimSpace(string(out)) == "" {
		t.Error("captured stdout is empty")
	}
	if log.String() != string(out) {
		t.Error("stdout should also be appended to the log")
	}
}

func TestRunTool_ContextCancellation(t *testing.T) {
	env, _, _ := newTestEnv(t, tool.Go)
	env.Cfg.Quiet = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	if err := env.runTool(ctx, &log, "go", "env"); err == nil {
		t.Error("runTool() with canceled context should fail")
	}
}
