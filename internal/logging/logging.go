// Package logging builds the per-run audit logger: a durable JSON file
// that captures the full info-level trail of a run, and a console sink
// that only surfaces warnings and errors.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewRunLogger opens logDir/run_<runID>.log and returns a sugared logger
// teeing into it, plus a close function that flushes and closes the file.
func NewRunLogger(logDir, runID string) (*zap.SugaredLogger, func() error, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.Create(filepath.Join(logDir, "run_"+runID+".log"))
	if err != nil {
		return nil, nil, fmt.Errorf("create run log: %w", err)
	}

	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.TimeKey = "ts"
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileCfg),
		zapcore.AddSync(f),
		zapcore.InfoLevel,
	)

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stderr),
		zapcore.WarnLevel,
	)

	logger := zap.New(zapcore.NewTee(fileCore, consoleCore))
	closer := func() error {
		// Sync errors on a terminal stderr are expected noise; the file
		// close result is what matters.
		_ = logger.Sync()
		return f.Close()
	}
	return logger.Sugar(), closer, nil
}
