// Package logging builds the process logger from configuration and adapts it
// to the application's context logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/andrescamacho/starlane/internal/application/common"
	"github.com/andrescamacho/starlane/internal/infrastructure/config"
)

// New creates a logrus logger for the given configuration
func New(cfg config.LoggingConfig) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	out, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	log.SetOutput(out)
	log.SetReportCaller(cfg.IncludeCaller)

	return log, nil
}

func openOutput(cfg config.LoggingConfig) (io.Writer, error) {
	switch cfg.Output {
	case "stderr":
		return os.Stderr, nil
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, nil
	default:
		return os.Stdout, nil
	}
}

// ContextLogger writes application log lines through a logrus entry
type ContextLogger struct {
	entry *logrus.Entry
}

// NewContextLogger wraps entry so handlers can log via common.LoggerFromContext
func NewContextLogger(entry *logrus.Entry) *ContextLogger {
	return &ContextLogger{entry: entry}
}

var _ common.Logger = (*ContextLogger)(nil)

// Log implements common.Logger
func (l *ContextLogger) Log(level, message string, metadata map[string]interface{}) {
	entry := l.entry
	if len(metadata) > 0 {
		entry = entry.WithFields(logrus.Fields(metadata))
	}
	entry.Log(parseLevel(level), message)
}

func parseLevel(level string) logrus.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return logrus.DebugLevel
	case "WARNING", "WARN":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
