package stage

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// console returns the writer external-tool output is mirrored to. Quiet mode
// keeps output in the log file only.
func (e *Env) console() io.Writer {
	if e.Cfg != nil && e.Cfg.Quiet {
		return io.Discard
	}
	return os.Stdout
}

// runTool executes an external command with combined output teed to the
// console and log. The returned error is the command's exit error, so callers
// can classify non-zero exits as stage failures.
func (e *Env) runTool(ctx context.Context, log io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.WorkDir
	tee := io.MultiWriter(e.console(), log)
	cmd.Stdout = tee
	cmd.Stderr = tee
	return cmd.Run()
}

// captureTool executes an external command, capturing stdout for the caller
// while still appending both streams to the log.
func (e *Env) captureTool(ctx context.Context, log io.Writer, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.WorkDir
	cmd.Stdout = io.MultiWriter(&stdout, log)
	cmd.Stderr = log
	err := cmd.Run()
	return stdout.Bytes(), err
}
