// Package logging routes the standard logger to stderr and, when configured,
// to a size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrlokans/missioncontrol/internal/config"
)

// Setup points the standard logger at the configured outputs. The returned
// closer flushes and closes the log file; it is a no-op without one.
func Setup(cfg config.Log) (io.Closer, error) {
	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, err
	}

	rotator := NewRotator(cfg)
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	log.Printf("Logging to %s", cfg.File)
	return rotator, nil
}

// NewRotator returns the rotating writer for cfg.File.
func NewRotator(cfg config.Log) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
