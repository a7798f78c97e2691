package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tasklist/internal/config"
)

// DebugEnabled returns true if debug mode is enabled via TASKLIST_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TASKLIST_DEBUG") != ""
}

// New builds the application logger. Output goes to stderr so command output
// on stdout stays machine readable.
func New(cfg config.LoggingConfig) *logrus.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds a logger writing to w
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	logger.SetLevel(logrus.WarnLevel)
	if lvl, err := logrus.ParseLevel(cfg.Level); err == nil {
		logger.SetLevel(lvl)
	}
	if cfg.Debug || DebugEnabled() {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// NewSession returns an entry tagged with a fresh session id. Every log line
// written during one process run shares it.
func NewSession(logger *logrus.Logger) *logrus.Entry {
	return logger.WithField("session_id", uuid.NewString())
}

// Discard returns an entry that drops everything, for tests and callers that
// do not care about logs
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
