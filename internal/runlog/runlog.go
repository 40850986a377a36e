// Package runlog emits a machine-readable record of each invocation alongside
// the human console output: one JSON line per stage plus a final aggregate
// entry, tagged with a unique run ID.
package runlog

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"goqa/internal/stage"
)

// Logger writes the structured run log. The underlying file is overwritten on
// every run, matching the artifact layout contract.
type Logger struct {
	z     *zap.Logger
	file  *os.File
	runID string
}

// New creates a Logger writing NDJSON to path.
func New(path string) (*Logger, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create run log: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.InfoLevel)

	runID := uuid.NewString()
	return &Logger{
		z:     zap.New(core).With(zap.String("run_id", runID)),
		file:  f,
		runID: runID,
	}, nil
}

// Nop returns a Logger that discards everything. Used when the run log file
// cannot be created; the pipeline still runs.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// RunID returns the unique identifier of this invocation.
func (l *Logger) RunID() string {
	return l.runID
}

// RunStarted records the effective focus target and enabled stages.
func (l *Logger) RunStarted(focus string, stages []string) {
	l.z.Info("run started",
		zap.String("event", "run_started"),
		zap.String("focus", focus),
		zap.Strings("stages", stages),
	)
}

// StageFinished records one stage outcome.
func (l *Logger) StageFinished(res stage.Result) {
	fields := []zap.Field{
		zap.String("event", "stage_finished"),
		zap.String("stage", res.Stage),
		zap.String("status", res.Status.String()),
		zap.Duration("duration", res.Duration),
	}
	if res.LogPath != "" {
		fields = append(fields, zap.String("log", res.LogPath))
	}
	if res.Note != "" {
		fields = append(fields, zap.String("note", res.Note))
	}
	if res.Err != nil {
		fields = append(fields, zap.String("error", res.Err.Error()))
	}
	l.z.Info("stage finished", fields...)
}

// RunFinished records the aggregate result.
func (l *Logger) RunFinished(success bool, elapsed time.Duration) {
	l.z.Info("run finished",
		zap.String("event", "run_finished"),
		zap.Bool("success", success),
		zap.Duration("elapsed", elapsed),
	)
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() {
	_ = l.z.Sync()
	if l.file != nil {
		_ = l.file.Close()
	}
}
