// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"gitea.kood.tech/petrkubec/travel-buddy/config"
)

// Logger wraps logrus.Logger with request helpers.
type Logger struct {
	*logrus.Logger
}

// Fields represents a map of fields for structured logging
type Fields = logrus.Fields

// New creates a logger from config. File output is rotated by lumberjack.
func New(cfg *config.LoggingConfig) (*Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	var output io.Writer = os.Stdout
	if cfg.Output == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, err
		}
		output = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
	}
	logger.SetOutput(output)

	return &Logger{Logger: logger}, nil
}

// Close releases the rotating file, if any.
func (l *Logger) Close() error {
	if c, ok := l.Out.(io.Closer); ok && l.Out != os.Stdout {
		return c.Close()
	}
	return nil
}

func (l *Logger) LogRequest(method, path, clientIP string, statusCode int, durationMs int64) {
	entry := l.WithFields(Fields{
		"method":      method,
		"path":        path,
		"client_ip":   clientIP,
		"status_code": statusCode,
		"duration_ms": durationMs,
		"type":        "request",
	})
	if statusCode >= 500 {
		entry.Error("HTTP request")
		return
	}
	entry.Info("HTTP request")
}
