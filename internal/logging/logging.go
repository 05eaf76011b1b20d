// Package logging builds the zap logger used across sanchai.
//
// The chat TUI owns the terminal, so log output never goes to stdout or
// stderr: it is either written to a file or discarded.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New
type Options struct {
	// File is the log destination. Empty disables logging.
	File string
	// Debug lowers the level from info to debug.
	Debug bool
}

// New returns a JSON file logger, or a no-op logger when opts.File is empty
func New(opts Options) (*zap.Logger, error) {
	if opts.File == "" {
		return zap.NewNop(), nil
	}

	if dir := filepath.Dir(opts.File); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{opts.File}
	config.ErrorOutputPaths = []string{opts.File}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil
	if opts.Debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("sanchai"), nil
}
