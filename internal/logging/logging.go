// Package logging builds the zap loggers used by the desktop and terminal
// front ends.
package logging

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ytget/yt-dlgui/internal/platform"
)

// LogFileName is the log file written inside the data directory
const LogFileName = "yt-dlgui.log"

// New builds a logger at the given level writing to outputPaths
// ("stderr" when none are given). debug switches to the console encoder.
func New(level string, outputPaths ...string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if len(outputPaths) > 0 {
		cfg.OutputPaths = outputPaths
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// NewFile builds a logger that appends to dataDir/yt-dlgui.log so the
// terminal stays clean for interactive front ends.
func NewFile(level, dataDir string) (*zap.Logger, error) {
	if err := platform.CreateDirectoryIfNotExists(dataDir); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return New(level, filepath.Join(dataDir, LogFileName))
}
