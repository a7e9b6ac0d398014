// Package logging configures the application logger. The TUI owns the
// terminal, so log lines go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Options selects where and how much to log.
type Options struct {
	Level string
	Path  string
}

// New builds a logger writing to opts.Path. An empty path discards output.
// The returned closer releases the log file.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	levelName := strings.TrimSpace(opts.Level)
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	if opts.Path == "" {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(file)
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
